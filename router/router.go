package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeremiapane/retail-manager/config"
	"github.com/yeremiapane/retail-manager/controllers"
	"github.com/yeremiapane/retail-manager/middlewares"
	"github.com/yeremiapane/retail-manager/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg config.ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.AllowedOrigin))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	if cfg.RateLimit > 0 && cfg.RateBurst > 0 {
		r.Use(middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).RateLimit())
	}

	// Inisialisasi service
	integritySvc := services.NewIntegrityService(db, nil)
	catalogSvc := services.NewCatalogService(db)
	paymentSvc := services.NewPaymentService(db, integritySvc)

	// Inisialisasi controller
	healthCtrl := controllers.NewHealthController(db)
	customerCtrl := controllers.NewCustomerController(integritySvc, catalogSvc)
	productCtrl := controllers.NewProductController(integritySvc, catalogSvc)
	supplierCtrl := controllers.NewSupplierController(integritySvc, catalogSvc)
	orderCtrl := controllers.NewOrderController(integritySvc, catalogSvc, paymentSvc)
	payCtrl := controllers.NewPayController(catalogSvc)

	r.GET("/", healthCtrl.Index)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", healthCtrl.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// -- CUSTOMER --
	customer := r.Group("/customer")
	{
		customer.GET("", customerCtrl.ListCustomers)
		customer.GET("/insert", customerCtrl.InsertForm)
		customer.POST("/insert", customerCtrl.Insert)
		customer.GET("/:cust_no/change", customerCtrl.ChangeForm)
		customer.POST("/change", customerCtrl.Change)
		customer.GET("/:cust_no/delete", customerCtrl.DeleteForm)
		customer.POST("/delete", customerCtrl.Delete)
	}

	// -- PRODUCT --
	product := r.Group("/product")
	{
		product.GET("", productCtrl.ListProducts)
		product.GET("/insert", productCtrl.InsertForm)
		product.POST("/insert", productCtrl.Insert)
		product.GET("/:sku/change", productCtrl.ChangeForm)
		product.POST("/change", productCtrl.Change)
		product.GET("/:sku/delete", productCtrl.DeleteForm)
		product.POST("/delete", productCtrl.Delete)
	}

	// -- SUPPLIER --
	supplier := r.Group("/supplier")
	{
		supplier.GET("", supplierCtrl.ListSuppliers)
		supplier.GET("/insert", supplierCtrl.InsertForm)
		supplier.POST("/insert", supplierCtrl.Insert)
		supplier.GET("/:tin/change", supplierCtrl.ChangeForm)
		supplier.POST("/change", supplierCtrl.Change)
		supplier.GET("/:tin/delete", supplierCtrl.DeleteForm)
		supplier.POST("/delete", supplierCtrl.Delete)
	}

	// -- ORDERS --
	orders := r.Group("/orders")
	{
		orders.GET("", orderCtrl.ListOrders)
		orders.GET("/insert", orderCtrl.InsertForm)
		orders.POST("/insert", orderCtrl.Insert)
		orders.GET("/:order_no", orderCtrl.OrderContents)
		orders.GET("/:order_no/delete", orderCtrl.DeleteForm)
		orders.POST("/delete", orderCtrl.Delete)
		orders.GET("/:order_no/pay", orderCtrl.PayForm)
		orders.POST("/pay", orderCtrl.Pay)
	}

	// -- PAY --
	r.GET("/pay", payCtrl.ListPayments)

	return r
}
