package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"washline/handlers"
	"washline/middleware"
	"washline/utils"
)

// RegisterAuthRoutes registers the session endpoints. Login and verify
// are public; logout needs a live session to know what to revoke.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/auth")
	{
		api.POST("/login", hb.Auth.LoginHandler)
		api.GET("/verify", hb.Auth.VerifyHandler)

		api.POST("/logout", middleware.SessionAuth(hb.AuthService), hb.Auth.LogoutHandler)
	}
}

// RegisterCustomerRoutes registers the customer endpoints, all behind
// the session guard.
func RegisterCustomerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/customers")
	{
		api.Use(middleware.SessionAuth(hb.AuthService))
		api.GET("", hb.Customers.ListCustomersHandler)
		api.POST("", hb.Customers.CreateCustomerHandler)
		api.GET("/:customerId", hb.Customers.GetCustomerHandler)
		api.DELETE("/:customerId", hb.Customers.DeleteCustomerHandler)
		api.GET("/:customerId/bills", hb.Customers.ListCustomerBillsHandler)
		api.POST("/:customerId/bills", hb.Customers.CreateCustomerBillHandler)
	}
}

// RegisterBillRoutes registers the bill endpoints, all behind the
// session guard.
func RegisterBillRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/bills")
	{
		api.Use(middleware.SessionAuth(hb.AuthService))
		api.PUT("/:billId", hb.Bills.UpsertBillHandler)
		api.GET("/:billId", hb.Bills.GetBillHandler)
		api.DELETE("/:billId", hb.Bills.DeleteBillHandler)
		api.GET("/:billId/pdf", hb.Bills.BillPDFHandler)
	}
}

// RegisterHealthRoute registers a public health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and the CORS
// policy. Preflight OPTIONS requests are answered 204 before auth or
// routing run.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		MaxAge:          12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound,
			"No route configured for "+c.Request.Method+" "+c.Request.URL.Path)
	})

	RegisterAuthRoutes(r, hb)
	RegisterCustomerRoutes(r, hb)
	RegisterBillRoutes(r, hb)
	RegisterHealthRoute(r)
}
