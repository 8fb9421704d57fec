package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/threadline-shop/threadline-api/internal/application/auth"
	"github.com/threadline-shop/threadline-api/internal/application/inventory"
	"github.com/threadline-shop/threadline-api/internal/application/order"
	"github.com/threadline-shop/threadline-api/internal/application/usecase"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
)

// RouterDeps groups the dependencies the router wires into handlers.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CatalogUC  *usecase.CatalogUseCase
	StockUC    *inventory.StockUseCase
	OrderUC    *order.UseCase
	ReviewUC   *usecase.ReviewUseCase
	WishlistUC *usecase.WishlistUseCase
	PrefsUC    *usecase.PreferencesUseCase
	ReturnsUC  *usecase.ReturnsUseCase
	JWTSecret  string
}

// Router registers the API routes. Three tiers: public storefront
// reads, authenticated customer routes, and admin routes gated by role.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authRequired := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authRequired, authHandler.Logout)
	authGroup.Get("/me", authRequired, authHandler.Me)
	authGroup.Post("/change-password", authRequired, authHandler.ChangePassword)

	// Catalog (public reads, admin writes)
	productHandler := NewProductHandler(deps.ProductUC, deps.PrefsUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", OptionalAuth(deps.JWTSecret), productHandler.GetByID)
	products.Post("/", authRequired, adminOnly, productHandler.Create)
	products.Put("/:id", authRequired, adminOnly, productHandler.Update)
	products.Delete("/:id", authRequired, adminOnly, productHandler.Delete)

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	brands := api.Group("/brands")
	brands.Get("/", catalogHandler.ListBrands)
	brands.Get("/:id", catalogHandler.GetBrand)
	brands.Post("/", authRequired, adminOnly, catalogHandler.CreateBrand)

	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Post("/", authRequired, adminOnly, catalogHandler.CreateCategory)

	collections := api.Group("/collections")
	collections.Get("/", catalogHandler.ListCollections)
	collections.Get("/:id", catalogHandler.GetCollection)
	collections.Post("/", authRequired, adminOnly, catalogHandler.CreateCollection)

	// Stock (public per-product availability, admin ledger operations)
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	products.Get("/:id/stock", inventoryHandler.GetByProduct)
	stock := api.Group("/stock", authRequired, adminOnly)
	stock.Post("/", inventoryHandler.Create)
	stock.Post("/decrement", inventoryHandler.Decrement)
	stock.Post("/increment", inventoryHandler.Increment)
	stock.Put("/:id", inventoryHandler.Update)
	stock.Delete("/:id", inventoryHandler.Delete)
	stock.Get("/low", inventoryHandler.LowStock)
	stock.Get("/summary", inventoryHandler.Summary)

	// Reviews (public reads per product, authenticated writes)
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	products.Get("/:id/reviews", reviewHandler.ListByProduct)
	products.Post("/:id/reviews", authRequired, reviewHandler.Create)
	reviews := api.Group("/reviews")
	reviews.Get("/", authRequired, adminOnly, reviewHandler.List)
	reviews.Put("/:id", authRequired, reviewHandler.Update)
	reviews.Delete("/:id", authRequired, reviewHandler.Delete)

	// Orders (guest checkout allowed on create)
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := api.Group("/orders")
	orders.Post("/", OptionalAuth(deps.JWTSecret), orderHandler.Create)
	orders.Get("/", authRequired, orderHandler.List)
	orders.Get("/stats", authRequired, adminOnly, orderHandler.Stats)
	orders.Get("/:id", authRequired, orderHandler.Get)
	orders.Post("/:id/cancel", authRequired, orderHandler.Cancel)
	orders.Put("/:id/status", authRequired, adminOnly, orderHandler.UpdateStatus)
	orders.Post("/:id/items", authRequired, adminOnly, orderHandler.AddItem)
	orders.Delete("/:id/items/:itemID", authRequired, adminOnly, orderHandler.RemoveItem)

	// Returns
	returnsHandler := NewReturnsHandler(deps.ReturnsUC)
	returns := api.Group("/returns", authRequired)
	returns.Post("/", returnsHandler.Create)
	returns.Get("/", returnsHandler.ListMine)
	returns.Get("/all", adminOnly, returnsHandler.ListAll)
	returns.Put("/:id", adminOnly, returnsHandler.Resolve)

	// Signed-in user's corner
	userHandler := NewUserHandler(deps.WishlistUC, deps.PrefsUC)
	me := api.Group("/me", authRequired)
	me.Get("/wishlist", userHandler.ListWishlist)
	me.Get("/wishlist/:productID", userHandler.ContainsWishlist)
	me.Post("/wishlist/:productID", userHandler.AddToWishlist)
	me.Delete("/wishlist/:productID", userHandler.RemoveFromWishlist)
	me.Delete("/wishlist", userHandler.ClearWishlist)
	me.Get("/preferences", userHandler.GetPreferences)
	me.Put("/preferences", userHandler.PutPreferences)
	me.Get("/recently-viewed", userHandler.RecentlyViewed)
	me.Post("/recently-viewed/:productID", userHandler.RecordView)
}
