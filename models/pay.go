package models

// Pay marks an order as settled. An order appears here at most once.
type Pay struct {
	OrderNo int64 `gorm:"column:order_no;primaryKey;autoIncrement:false" json:"order_no"`
	CustNo  int64 `gorm:"column:cust_no;not null;index" json:"cust_no"`
}

func (Pay) TableName() string {
	return "pay"
}

// All returns every retail model in migration order.
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&Product{},
		&Supplier{},
		&Delivery{},
		&Order{},
		&Contains{},
		&Pay{},
		&Process{},
	}
}
