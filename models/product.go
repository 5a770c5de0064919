package models

import "github.com/shopspring/decimal"

type Product struct {
	SKU         string          `gorm:"column:sku;primaryKey;type:varchar(25)" json:"sku"`
	Name        string          `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Description *string         `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null;check:product_price_positive,price > 0" json:"price"`
	EAN         *string         `gorm:"column:ean;type:varchar(13);uniqueIndex" json:"ean"`
	Suppliers   []Supplier      `gorm:"foreignKey:SKU;references:SKU" json:"-"`
	Lines       []Contains      `gorm:"foreignKey:SKU;references:SKU" json:"-"`
}

func (Product) TableName() string {
	return "product"
}
