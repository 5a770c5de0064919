package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/retail-manager/models"
	"gorm.io/gorm"
)

// CatalogService serves the read side: listings and order contents.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a CatalogService
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListCustomers returns every customer ordered by number
func (s *CatalogService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithContext(ctx).Order("cust_no").Find(&customers).Error
	return customers, err
}

// ListProducts returns every product ordered by SKU
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Order("sku").Find(&products).Error
	return products, err
}

// ProductSKUs returns the known SKUs, used for select options and order forms
func (s *CatalogService) ProductSKUs(ctx context.Context) ([]string, error) {
	var skus []string
	err := s.db.WithContext(ctx).Model(&models.Product{}).Order("sku").Pluck("sku", &skus).Error
	return skus, err
}

// ListSuppliers returns every supplier ordered by TIN
func (s *CatalogService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := s.db.WithContext(ctx).Order("tin").Find(&suppliers).Error
	return suppliers, err
}

// ListOrders returns every order with its payment state
func (s *CatalogService) ListOrders(ctx context.Context) ([]models.OrderSummary, error) {
	var orders []models.OrderSummary
	err := s.db.WithContext(ctx).
		Table("orders").
		Select("orders.order_no, orders.cust_no, orders.date, pay.order_no IS NOT NULL AS paid").
		Joins("LEFT JOIN pay ON pay.order_no = orders.order_no").
		Order("orders.order_no").
		Scan(&orders).Error
	return orders, err
}

// FindOrder returns one order, or gorm.ErrRecordNotFound
func (s *CatalogService) FindOrder(ctx context.Context, orderNo int64) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderContents returns the product lines of an order with their subtotals
func (s *CatalogService) OrderContents(ctx context.Context, orderNo int64) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	err := s.db.WithContext(ctx).
		Table("contains").
		Select("contains.sku, product.name, product.price, contains.qty").
		Joins("JOIN product ON product.sku = contains.sku").
		Where("contains.order_no = ?", orderNo).
		Order("contains.sku").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].Subtotal = lines[i].Price.Mul(decimal.NewFromInt(int64(lines[i].Qty)))
	}
	return lines, nil
}

// ListPayments returns every pay row ordered by order number
func (s *CatalogService) ListPayments(ctx context.Context) ([]models.Pay, error) {
	var payments []models.Pay
	err := s.db.WithContext(ctx).Order("order_no").Find(&payments).Error
	return payments, err
}
