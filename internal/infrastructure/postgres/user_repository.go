package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.RefreshTokenRepository = (*RefreshTokenRepo)(nil)
var _ repository.PreferencesRepository = (*PreferencesRepo)(nil)
var _ repository.RecentlyViewedRepository = (*RecentlyViewedRepo)(nil)

// UserRepo implements UserRepository on PostgreSQL. users.email has a
// unique index.
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the user adapter. Pass pool or tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func (r *UserRepo) Create(u *entity.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT id, email, name, password_hash, role, created_at, updated_at FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get user")
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := `SELECT id, email, name, password_hash, role, created_at, updated_at FROM users WHERE email = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "find user by email")
}

func (r *UserRepo) UpdatePassword(userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// RefreshTokenRepo implements RefreshTokenRepository on PostgreSQL.
type RefreshTokenRepo struct {
	q Querier
}

// NewRefreshTokenRepository builds the refresh token adapter.
func NewRefreshTokenRepository(q Querier) *RefreshTokenRepo {
	return &RefreshTokenRepo{q: q}
}

func (r *RefreshTokenRepo) Create(t *entity.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token, jwt_id, expires_at, revoked, revoked_at, created_at, created_by_ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.UserID, t.Token, t.JWTID, t.ExpiresAt, t.Revoked, t.RevokedAt, t.CreatedAt, t.CreatedByIP,
	)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepo) GetByToken(token string) (*entity.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, jwt_id, expires_at, revoked, revoked_at, created_at, created_by_ip
		FROM refresh_tokens WHERE token = $1`
	var t entity.RefreshToken
	err := r.q.QueryRow(context.Background(), query, token).Scan(
		&t.ID, &t.UserID, &t.Token, &t.JWTID, &t.ExpiresAt, &t.Revoked, &t.RevokedAt, &t.CreatedAt, &t.CreatedByIP,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &t, nil
}

func (r *RefreshTokenRepo) Revoke(id string) error {
	query := `UPDATE refresh_tokens SET revoked = true, revoked_at = now() WHERE id = $1 AND NOT revoked`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RefreshTokenRepo) RevokeAllForUser(userID string) error {
	query := `UPDATE refresh_tokens SET revoked = true, revoked_at = now() WHERE user_id = $1 AND NOT revoked`
	if _, err := r.q.Exec(context.Background(), query, userID); err != nil {
		return fmt.Errorf("revoke refresh tokens for user: %w", err)
	}
	return nil
}

// PreferencesRepo implements PreferencesRepository on PostgreSQL with
// one row per user.
type PreferencesRepo struct {
	q Querier
}

// NewPreferencesRepository builds the preferences adapter.
func NewPreferencesRepository(q Querier) *PreferencesRepo {
	return &PreferencesRepo{q: q}
}

func (r *PreferencesRepo) GetByUser(userID string) (*entity.UserPreferences, error) {
	query := `
		SELECT id, user_id, price_range_min, price_range_max, updated_at
		FROM user_preferences WHERE user_id = $1`
	var p entity.UserPreferences
	err := r.q.QueryRow(context.Background(), query, userID).Scan(
		&p.ID, &p.UserID, &p.PriceRangeMin, &p.PriceRangeMax, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &p, nil
}

func (r *PreferencesRepo) Upsert(prefs *entity.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (id, user_id, price_range_min, price_range_max, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET price_range_min = EXCLUDED.price_range_min,
			price_range_max = EXCLUDED.price_range_max,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		prefs.ID, prefs.UserID, prefs.PriceRangeMin, prefs.PriceRangeMax, prefs.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

// RecentlyViewedRepo implements RecentlyViewedRepository on PostgreSQL.
// Repeat views of the same product refresh the timestamp instead of
// stacking duplicate rows.
type RecentlyViewedRepo struct {
	q Querier
}

// NewRecentlyViewedRepository builds the recently-viewed adapter.
func NewRecentlyViewedRepository(q Querier) *RecentlyViewedRepo {
	return &RecentlyViewedRepo{q: q}
}

func (r *RecentlyViewedRepo) Add(view *entity.RecentlyViewed) error {
	query := `
		INSERT INTO recently_viewed (id, user_id, product_id, viewed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET viewed_at = EXCLUDED.viewed_at`
	_, err := r.q.Exec(context.Background(), query, view.ID, view.UserID, view.ProductID, view.ViewedAt)
	if err != nil {
		return fmt.Errorf("insert recently viewed: %w", err)
	}
	return nil
}

func (r *RecentlyViewedRepo) ListByUser(userID string, limit int) ([]*entity.RecentlyViewed, error) {
	query := `
		SELECT id, user_id, product_id, viewed_at
		FROM recently_viewed WHERE user_id = $1
		ORDER BY viewed_at DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recently viewed: %w", err)
	}
	defer rows.Close()

	var out []*entity.RecentlyViewed
	for rows.Next() {
		var v entity.RecentlyViewed
		if err := rows.Scan(&v.ID, &v.UserID, &v.ProductID, &v.ViewedAt); err != nil {
			return nil, fmt.Errorf("scan recently viewed: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
