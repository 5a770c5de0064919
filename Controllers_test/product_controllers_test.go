package Controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/retail-manager/models"
)

func TestProductPriceRules(t *testing.T) {
	r, _ := setupTestRouter(t)

	tests := []struct {
		price   string
		code    int
		message string
	}{
		{"12.50", http.StatusCreated, ""},
		{"0", http.StatusBadRequest, "Price must be greater than zero."},
		{"-3", http.StatusBadRequest, "Price must be greater than zero."},
		{"1.234", http.StatusBadRequest, "Price must have at most 2 decimal places."},
		{"12345678901", http.StatusBadRequest, "Price must have at most 10 digits."},
		{"abc", http.StatusBadRequest, "Price must be a number."},
	}
	for i, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			w, resp := doForm(t, r, "/product/insert", url.Values{
				"sku": {"SKU-" + string(rune('A'+i))}, "name": {"Thing"}, "price": {tt.price},
			})
			assert.Equal(t, tt.code, w.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Message)
			}
		})
	}
}

func TestProductChangeRequiresPrice(t *testing.T) {
	r, db := setupTestRouter(t)
	w, _ := doForm(t, r, "/product/insert", url.Values{"sku": {"A"}, "name": {"Apple"}, "price": {"1.50"}, "ean": {"5601234567890"}})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doForm(t, r, "/product/change", url.Values{"sku": {"A"}, "description": {"Crisp"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Price is required.", resp.Message)

	w, _ = doForm(t, r, "/product/change", url.Values{"sku": {"A"}, "description": {"Crisp"}, "price": {"1.75"}})
	require.Equal(t, http.StatusOK, w.Code)

	var product models.Product
	require.NoError(t, db.First(&product, "sku = ?", "A").Error)
	assert.Equal(t, "1.75", product.Price.StringFixed(2))
	require.NotNil(t, product.Description)
	assert.Equal(t, "Crisp", *product.Description)

	w, resp = doForm(t, r, "/product/insert", url.Values{"sku": {"B"}, "name": {"Bread"}, "price": {"2"}, "ean": {"5601234567890"}})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EAN already exists.", resp.Message)

	w, resp = doJSON(t, r, http.MethodGet, "/product/A/change", nil)
	require.Equal(t, http.StatusOK, w.Code)
	change := decode[form](t, resp.Data)
	names := make([]string, 0, len(change.Fields))
	for _, f := range change.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"sku", "name", "description", "price"}, names)
}

func TestSupplierInsertAndForm(t *testing.T) {
	r, db := setupTestRouter(t)
	doForm(t, r, "/product/insert", url.Values{"sku": {"A"}, "name": {"Apple"}, "price": {"1.50"}})

	w, resp := doJSON(t, r, http.MethodGet, "/supplier/insert", nil)
	require.Equal(t, http.StatusOK, w.Code)
	insert := decode[form](t, resp.Data)
	for _, f := range insert.Fields {
		if f.Name == "sku" {
			assert.Equal(t, []string{"A"}, f.Options)
		}
	}

	w, resp = doForm(t, r, "/supplier/insert", url.Values{"tin": {"S1"}, "sku": {"Z"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product does not exist.", resp.Message)

	w, resp = doForm(t, r, "/supplier/insert", url.Values{"tin": {"S1"}, "sku": {"A"}, "date": {"15/01/2024"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Date must be a date in YYYY-MM-DD format.", resp.Message)

	w, _ = doForm(t, r, "/supplier/insert", url.Values{"tin": {"S1"}, "sku": {"A"}, "date": {"2024-01-15"}})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/supplier", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[table](t, resp.Data)
	require.Len(t, list.Rows, 1)
	assert.Equal(t, "2024-01-15", list.Rows[0][4])

	w, _ = doForm(t, r, "/product/delete", url.Values{"sku": {"A"}})
	require.Equal(t, http.StatusOK, w.Code)

	var n int64
	db.Model(&models.Supplier{}).Count(&n)
	assert.Zero(t, n)
}
