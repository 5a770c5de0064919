package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/retail-manager/integrity"
	"github.com/yeremiapane/retail-manager/services"
	"github.com/yeremiapane/retail-manager/utils"
)

type ProductController struct {
	entityHandlers
	Catalog *services.CatalogService
}

func NewProductController(integritySvc *services.IntegrityService, catalog *services.CatalogService) *ProductController {
	return &ProductController{
		entityHandlers: entityHandlers{kind: integrity.KindProduct, path: "/product", integrity: integritySvc},
		Catalog:        catalog,
	}
}

// ListProducts -> GET /product
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondFailure(c, err)
		return
	}

	table := utils.Table{
		Title:   "Products",
		Columns: []string{"sku", "name", "description", "price", "ean"},
		Rows:    make([][]string, 0, len(products)),
	}
	for _, p := range products {
		table.Rows = append(table.Rows, []string{
			p.SKU, p.Name, optional(p.Description), p.Price.StringFixed(2), optional(p.EAN),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", table)
}
