package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Handlers bundles the per-context route handlers.
type Handlers struct {
	Orders        *OrderHandlers
	Catalog       *CatalogHandlers
	Staff         *StaffHandlers
	Notifications *NotificationHandlers
}

// NewRouter builds the gin engine with all dashboard routes registered.
func NewRouter(serviceName string, handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	orders := api.Group("/orders")
	orders.GET("", handlers.Orders.List)
	orders.POST("", handlers.Orders.Create)
	orders.GET("/stats", handlers.Orders.Stats)
	orders.GET("/:id", handlers.Orders.Get)
	orders.PATCH("/:id", handlers.Orders.Transition)
	orders.DELETE("/:id", handlers.Orders.Delete)
	orders.POST("/:id/payment", handlers.Orders.MarkPaid)

	products := api.Group("/products")
	products.GET("", handlers.Catalog.List)
	products.POST("", handlers.Catalog.Create)
	products.POST("/lowstock-sweep", handlers.Catalog.Sweep)
	products.PUT("/:id", handlers.Catalog.Update)
	products.DELETE("/:id", handlers.Catalog.Delete)

	staff := api.Group("/staff")
	staff.GET("", handlers.Staff.List)
	staff.POST("", handlers.Staff.Create)
	staff.PUT("/:id", handlers.Staff.Update)
	staff.DELETE("/:id", handlers.Staff.Delete)

	notifications := api.Group("/notifications")
	notifications.GET("", handlers.Notifications.List)
	notifications.GET("/unread-count", handlers.Notifications.UnreadCount)
	notifications.POST("/read-all", handlers.Notifications.MarkAllRead)
	notifications.POST("/:id/read", handlers.Notifications.MarkRead)
	notifications.DELETE("", handlers.Notifications.Clear)

	return router
}
