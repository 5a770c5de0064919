package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/retail-manager/database"
	"github.com/yeremiapane/retail-manager/utils"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Index -> GET /, the sections of the application
func (hc *HealthController) Index(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Retail manager", gin.H{
		"sections": []gin.H{
			{"name": "Customers", "path": "/customer"},
			{"name": "Products", "path": "/product"},
			{"name": "Suppliers", "path": "/supplier"},
			{"name": "Orders", "path": "/orders"},
			{"name": "Payments", "path": "/pay"},
		},
	})
}

// Health -> GET /health, fails with 503 when the store does not answer
func (hc *HealthController) Health(c *gin.Context) {
	if err := database.Ping(hc.DB.WithContext(c.Request.Context())); err != nil {
		utils.ErrorLogger.WithError(err).Error("health check failed")
		utils.RespondJSON(c, http.StatusServiceUnavailable, "database unavailable", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "ok", nil)
}
