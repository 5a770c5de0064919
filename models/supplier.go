package models

import "time"

type Supplier struct {
	TIN        string     `gorm:"column:tin;primaryKey;type:varchar(20)" json:"tin"`
	Name       *string    `gorm:"column:name;type:varchar(200)" json:"name"`
	Address    *string    `gorm:"column:address;type:varchar(255)" json:"address"`
	SKU        string     `gorm:"column:sku;type:varchar(25);not null;index" json:"sku"`
	Date       *time.Time `gorm:"column:date;type:date" json:"date"`
	Deliveries []Delivery `gorm:"foreignKey:TIN;references:TIN" json:"-"`
}

func (Supplier) TableName() string {
	return "supplier"
}

// Delivery links a supplier to a warehouse address. Rows are only ever
// removed, by the supplier and product cascades.
type Delivery struct {
	Address string `gorm:"column:address;primaryKey;type:varchar(255)" json:"address"`
	TIN     string `gorm:"column:tin;primaryKey;type:varchar(20)" json:"tin"`
}

func (Delivery) TableName() string {
	return "delivery"
}
