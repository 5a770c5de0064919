package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	OrderNo   int64      `gorm:"column:order_no;primaryKey;autoIncrement:false" json:"order_no"`
	CustNo    int64      `gorm:"column:cust_no;not null;index" json:"cust_no"`
	Date      time.Time  `gorm:"column:date;type:date;not null" json:"date"`
	Lines     []Contains `gorm:"foreignKey:OrderNo;references:OrderNo" json:"-"`
	Payment   *Pay       `gorm:"foreignKey:OrderNo;references:OrderNo" json:"-"`
	Processes []Process  `gorm:"foreignKey:OrderNo;references:OrderNo" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// Contains is one product line of an order.
type Contains struct {
	OrderNo int64  `gorm:"column:order_no;primaryKey;autoIncrement:false" json:"order_no"`
	SKU     string `gorm:"column:sku;primaryKey;type:varchar(25)" json:"sku"`
	Qty     int    `gorm:"column:qty;not null;check:contains_qty_positive,qty > 0" json:"qty"`
}

func (Contains) TableName() string {
	return "contains"
}

// Process records which employee handled an order.
type Process struct {
	SSN     string `gorm:"column:ssn;primaryKey;type:varchar(20)" json:"ssn"`
	OrderNo int64  `gorm:"column:order_no;primaryKey;autoIncrement:false" json:"order_no"`
}

func (Process) TableName() string {
	return "process"
}

// OrderSummary is an order row as listed, with its payment state.
type OrderSummary struct {
	OrderNo int64     `json:"order_no"`
	CustNo  int64     `json:"cust_no"`
	Date    time.Time `json:"date"`
	Paid    bool      `json:"paid"`
}

// OrderLine is a contains row joined with its product.
type OrderLine struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Qty      int             `json:"qty"`
	Subtotal decimal.Decimal `json:"subtotal" gorm:"-"`
}
