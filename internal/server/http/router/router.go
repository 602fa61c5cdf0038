package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/server/http/handlers"
	"github.com/memoriza/memoriza/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	accountHandler := handlers.NewAccountHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	addressHandler := handlers.NewAddressHandler(facade)
	shippingHandler := handlers.NewShippingHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)
	adminCatalogHandler := handlers.NewAdminCatalogHandler(facade)
	adminOrderHandler := handlers.NewAdminOrderHandler(facade)
	adminStaffHandler := handlers.NewAdminStaffHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/oauth/login", authHandler.OAuthLogin)
	auth.GET("/oauth/callback", authHandler.OAuthCallback)

	api.GET("/products", catalogHandler.ListProducts)
	api.GET("/products/:id", catalogHandler.GetProduct)
	api.GET("/categories", catalogHandler.ListCategories)
	api.POST("/shipping/quote", shippingHandler.Quote)
	api.POST("/payments/webhook", webhookHandler.Receive)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.GET("/me", accountHandler.Profile)
	authed.PUT("/me", accountHandler.Update)
	authed.PUT("/me/password", accountHandler.ChangePassword)
	authed.DELETE("/me", accountHandler.Deactivate)

	authed.GET("/cart", cartHandler.Get)
	authed.DELETE("/cart", cartHandler.Clear)
	authed.POST("/cart/items", cartHandler.AddItem)
	authed.PUT("/cart/items/:id", cartHandler.UpdateItem)
	authed.DELETE("/cart/items/:id", cartHandler.RemoveItem)

	authed.GET("/addresses", addressHandler.List)
	authed.POST("/addresses", addressHandler.Create)
	authed.PUT("/addresses/:id", addressHandler.Update)
	authed.DELETE("/addresses/:id", addressHandler.Delete)

	authed.POST("/orders", orderHandler.Checkout)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.POST("/orders/:id/refund", orderHandler.RequestRefund)

	admin := authed.Group("/admin")
	admin.Use(middleware.StaffRequired())

	products := admin.Group("/products")
	products.GET("", guard(facade, model.ModuleProducts, model.ActionView), adminCatalogHandler.ListProducts)
	products.GET("/:id", guard(facade, model.ModuleProducts, model.ActionView), adminCatalogHandler.GetProduct)
	products.POST("", guard(facade, model.ModuleProducts, model.ActionCreate), adminCatalogHandler.CreateProduct)
	products.PUT("/:id", guard(facade, model.ModuleProducts, model.ActionEdit), adminCatalogHandler.UpdateProduct)
	products.PUT("/:id/active", guard(facade, model.ModuleProducts, model.ActionEdit), adminCatalogHandler.SetProductActive)
	products.DELETE("/:id", guard(facade, model.ModuleProducts, model.ActionDelete), adminCatalogHandler.DeleteProduct)

	categories := admin.Group("/categories")
	categories.GET("", guard(facade, model.ModuleCategories, model.ActionView), adminCatalogHandler.ListCategories)
	categories.POST("", guard(facade, model.ModuleCategories, model.ActionCreate), adminCatalogHandler.CreateCategory)
	categories.PUT("/:id", guard(facade, model.ModuleCategories, model.ActionEdit), adminCatalogHandler.UpdateCategory)
	categories.DELETE("/:id", guard(facade, model.ModuleCategories, model.ActionDelete), adminCatalogHandler.DeleteCategory)

	orders := admin.Group("/orders")
	orders.GET("", guard(facade, model.ModuleOrders, model.ActionView), adminOrderHandler.List)
	orders.GET("/:id", guard(facade, model.ModuleOrders, model.ActionView), adminOrderHandler.Get)
	orders.PUT("/:id/status", guard(facade, model.ModuleOrders, model.ActionEdit), adminOrderHandler.UpdateStatus)
	orders.POST("/:id/refund/approve", guard(facade, model.ModuleOrders, model.ActionEdit), adminOrderHandler.ApproveRefund)
	orders.POST("/:id/refund/reject", guard(facade, model.ModuleOrders, model.ActionEdit), adminOrderHandler.RejectRefund)

	admin.GET("/customers", guard(facade, model.ModuleCustomers, model.ActionView), adminStaffHandler.ListCustomers)

	employees := admin.Group("/employees")
	employees.GET("", guard(facade, model.ModuleEmployees, model.ActionView), adminStaffHandler.ListEmployees)
	employees.POST("", guard(facade, model.ModuleEmployees, model.ActionCreate), adminStaffHandler.AssignEmployee)
	employees.DELETE("/:id", guard(facade, model.ModuleEmployees, model.ActionDelete), adminStaffHandler.RevokeEmployee)

	groups := admin.Group("/groups")
	groups.GET("", guard(facade, model.ModuleGroups, model.ActionView), adminStaffHandler.ListGroups)
	groups.GET("/:id", guard(facade, model.ModuleGroups, model.ActionView), adminStaffHandler.GetGroup)
	groups.POST("", guard(facade, model.ModuleGroups, model.ActionCreate), adminStaffHandler.CreateGroup)
	groups.PUT("/:id", guard(facade, model.ModuleGroups, model.ActionEdit), adminStaffHandler.UpdateGroup)
	groups.DELETE("/:id", guard(facade, model.ModuleGroups, model.ActionDelete), adminStaffHandler.DeleteGroup)

	admin.GET("/logs", guard(facade, model.ModuleLogs, model.ActionView), adminStaffHandler.ListAccessLog)

	return engine
}

func guard(facade handlers.StoreFacade, module model.BackOfficeModule, action model.PermissionAction) gin.HandlerFunc {
	return middleware.PermissionRequired(facade, module, action)
}
