package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/retail-manager/integrity"
	"github.com/yeremiapane/retail-manager/services"
	"github.com/yeremiapane/retail-manager/utils"
)

type CustomerController struct {
	entityHandlers
	Catalog *services.CatalogService
}

func NewCustomerController(integritySvc *services.IntegrityService, catalog *services.CatalogService) *CustomerController {
	return &CustomerController{
		entityHandlers: entityHandlers{kind: integrity.KindCustomer, path: "/customer", integrity: integritySvc},
		Catalog:        catalog,
	}
}

// ListCustomers -> GET /customer
func (cc *CustomerController) ListCustomers(c *gin.Context) {
	customers, err := cc.Catalog.ListCustomers(c.Request.Context())
	if err != nil {
		respondFailure(c, err)
		return
	}

	table := utils.Table{
		Title:   "Customers",
		Columns: []string{"cust_no", "name", "email", "phone", "address"},
		Rows:    make([][]string, 0, len(customers)),
	}
	for _, cu := range customers {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(cu.CustNo, 10), cu.Name, cu.Email, optional(cu.Phone), optional(cu.Address),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", table)
}
