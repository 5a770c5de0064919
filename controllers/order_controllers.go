package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/retail-manager/integrity"
	"github.com/yeremiapane/retail-manager/models"
	"github.com/yeremiapane/retail-manager/services"
	"github.com/yeremiapane/retail-manager/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	entityHandlers
	Catalog  *services.CatalogService
	Payments *services.PaymentService
}

func NewOrderController(integritySvc *services.IntegrityService, catalog *services.CatalogService, payments *services.PaymentService) *OrderController {
	return &OrderController{
		entityHandlers: entityHandlers{kind: integrity.KindOrder, path: "/orders", integrity: integritySvc},
		Catalog:        catalog,
		Payments:       payments,
	}
}

// ListOrders -> GET /orders
func (oc *OrderController) ListOrders(c *gin.Context) {
	orders, err := oc.Catalog.ListOrders(c.Request.Context())
	if err != nil {
		respondFailure(c, err)
		return
	}

	table := utils.Table{
		Title:   "Orders",
		Columns: []string{"order_no", "cust_no", "date", "paid"},
		Rows:    make([][]string, 0, len(orders)),
	}
	for _, o := range orders {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(o.OrderNo, 10),
			strconv.FormatInt(o.CustNo, 10),
			o.Date.Format(integrity.DateLayout),
			strconv.FormatBool(o.Paid),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", table)
}

// InsertForm -> GET /orders/insert, with one quantity field per known product
func (oc *OrderController) InsertForm(c *gin.Context) {
	skus, err := oc.Catalog.ProductSKUs(c.Request.Context())
	if err != nil {
		respondFailure(c, err)
		return
	}

	form := oc.form(integrity.OpCreate, "")
	for _, sku := range skus {
		form.Fields = append(form.Fields, utils.FormField{
			Name:  integrity.QuantityPrefix + sku,
			Label: "Quantity for " + sku,
			Type:  "number",
		})
	}
	utils.RespondJSON(c, http.StatusOK, "Insert form", form)
}

// OrderContents -> GET /orders/:order_no
func (oc *OrderController) OrderContents(c *gin.Context) {
	orderNo, err := strconv.ParseInt(strings.TrimSpace(c.Param("order_no")), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidKey)
		return
	}

	order, err := oc.Catalog.FindOrder(c.Request.Context(), orderNo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, ErrUnknownOrder)
		return
	}
	if err != nil {
		respondFailure(c, err)
		return
	}

	lines, err := oc.Catalog.OrderContents(c.Request.Context(), orderNo)
	if err != nil {
		respondFailure(c, err)
		return
	}
	paid, err := oc.Payments.IsPaid(c.Request.Context(), orderNo)
	if err != nil {
		respondFailure(c, err)
		return
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}

	utils.RespondJSON(c, http.StatusOK, "Order contents", gin.H{
		"order": models.OrderSummary{OrderNo: order.OrderNo, CustNo: order.CustNo, Date: order.Date, Paid: paid},
		"lines": lines,
		"total": total.StringFixed(2),
	})
}

// PayForm -> GET /orders/:order_no/pay
func (oc *OrderController) PayForm(c *gin.Context) {
	form := utils.Form{
		Title:  "Pay Order",
		Action: "/orders/pay",
		Submit: "Pay",
		Fields: []utils.FormField{{
			Name:     "order_no",
			Label:    "Order Number",
			Type:     "number",
			Required: true,
			Value:    strings.TrimSpace(c.Param("order_no")),
			ReadOnly: true,
		}},
	}
	utils.RespondJSON(c, http.StatusOK, "Payment confirmation", form)
}

// Pay -> POST /orders/pay
func (oc *OrderController) Pay(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		respondFailure(c, err)
		return
	}
	outcome, err := oc.Payments.PayOrder(c.Request.Context(), fields.Get("order_no"))
	if err != nil {
		respondFailure(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order paid", outcome)
}
