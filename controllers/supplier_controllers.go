package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/retail-manager/integrity"
	"github.com/yeremiapane/retail-manager/services"
	"github.com/yeremiapane/retail-manager/utils"
)

type SupplierController struct {
	entityHandlers
	Catalog *services.CatalogService
}

func NewSupplierController(integritySvc *services.IntegrityService, catalog *services.CatalogService) *SupplierController {
	return &SupplierController{
		entityHandlers: entityHandlers{kind: integrity.KindSupplier, path: "/supplier", integrity: integritySvc},
		Catalog:        catalog,
	}
}

// ListSuppliers -> GET /supplier
func (sc *SupplierController) ListSuppliers(c *gin.Context) {
	suppliers, err := sc.Catalog.ListSuppliers(c.Request.Context())
	if err != nil {
		respondFailure(c, err)
		return
	}

	table := utils.Table{
		Title:   "Suppliers",
		Columns: []string{"tin", "name", "address", "sku", "date"},
		Rows:    make([][]string, 0, len(suppliers)),
	}
	for _, s := range suppliers {
		date := ""
		if s.Date != nil {
			date = s.Date.Format(integrity.DateLayout)
		}
		table.Rows = append(table.Rows, []string{s.TIN, optional(s.Name), optional(s.Address), s.SKU, date})
	}
	utils.RespondJSON(c, http.StatusOK, "List of suppliers", table)
}

// InsertForm -> GET /supplier/insert, offering the known SKUs
func (sc *SupplierController) InsertForm(c *gin.Context) {
	sc.formWithSKUs(c, integrity.OpCreate, "", "Insert form")
}

// ChangeForm -> GET /supplier/:tin/change
func (sc *SupplierController) ChangeForm(c *gin.Context) {
	sc.formWithSKUs(c, integrity.OpUpdate, c.Param("tin"), "Change form")
}

func (sc *SupplierController) formWithSKUs(c *gin.Context, op integrity.Operation, key, message string) {
	skus, err := sc.Catalog.ProductSKUs(c.Request.Context())
	if err != nil {
		respondFailure(c, err)
		return
	}
	form := sc.form(op, key)
	setOptions(&form, "sku", skus)
	utils.RespondJSON(c, http.StatusOK, message, form)
}
