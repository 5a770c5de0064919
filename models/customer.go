package models

type Customer struct {
	CustNo   int64   `gorm:"column:cust_no;primaryKey;autoIncrement:false" json:"cust_no"`
	Name     string  `gorm:"column:name;type:varchar(80);not null" json:"name"`
	Email    string  `gorm:"column:email;type:varchar(254);not null;uniqueIndex" json:"email"`
	Phone    *string `gorm:"column:phone;type:varchar(15)" json:"phone"`
	Address  *string `gorm:"column:address;type:varchar(255)" json:"address"`
	Orders   []Order `gorm:"foreignKey:CustNo;references:CustNo" json:"-"`
	Payments []Pay   `gorm:"foreignKey:CustNo;references:CustNo" json:"-"`
}

func (Customer) TableName() string {
	return "customer"
}
