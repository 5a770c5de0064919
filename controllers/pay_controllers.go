package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/retail-manager/services"
	"github.com/yeremiapane/retail-manager/utils"
)

type PayController struct {
	Catalog *services.CatalogService
}

func NewPayController(catalog *services.CatalogService) *PayController {
	return &PayController{Catalog: catalog}
}

// ListPayments -> GET /pay
func (pc *PayController) ListPayments(c *gin.Context) {
	payments, err := pc.Catalog.ListPayments(c.Request.Context())
	if err != nil {
		respondFailure(c, err)
		return
	}

	table := utils.Table{
		Title:   "Payments",
		Columns: []string{"order_no", "cust_no"},
		Rows:    make([][]string, 0, len(payments)),
	}
	for _, p := range payments {
		table.Rows = append(table.Rows, []string{strconv.FormatInt(p.OrderNo, 10), strconv.FormatInt(p.CustNo, 10)})
	}
	utils.RespondJSON(c, http.StatusOK, "List of payments", table)
}
