package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/yeremiapane/retail-manager/integrity"
	"github.com/yeremiapane/retail-manager/models"
	"gorm.io/gorm"
)

// PaymentService records payments for orders
type PaymentService struct {
	db        *gorm.DB
	integrity *IntegrityService
}

// NewPaymentService creates a PaymentService on top of the shared integrity service
func NewPaymentService(db *gorm.DB, integrity *IntegrityService) *PaymentService {
	return &PaymentService{
		db:        db,
		integrity: integrity,
	}
}

// PayOrder marks an order as paid. The customer number is taken from the
// order itself so a client cannot pay on behalf of someone else.
func (s *PaymentService) PayOrder(ctx context.Context, orderNo string) (*Outcome, error) {
	fields := integrity.Fields{"order_no": orderNo}
	if !fields.Has("order_no") {
		return s.integrity.Apply(ctx, integrity.KindPay, integrity.OpCreate, fields)
	}

	n, err := strconv.ParseInt(fields.Get("order_no"), 10, 64)
	if err != nil {
		return nil, s.integrity.fail(ctx, integrity.KindPay, integrity.OpCreate, &integrity.Rejection{
			Reason:  integrity.ReasonInvalidFormat,
			Field:   "order_no",
			Message: "Order Number must be integer.",
		})
	}

	var order models.Order
	err = s.db.WithContext(ctx).Select("order_no", "cust_no").Where("order_no = ?", n).First(&order).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, s.integrity.fail(ctx, integrity.KindPay, integrity.OpCreate, &integrity.Rejection{
			Reason:  integrity.ReasonReferentialViolation,
			Field:   "order_no",
			Message: "Order does not exist.",
		})
	case err != nil:
		return nil, s.integrity.fail(ctx, integrity.KindPay, integrity.OpCreate, err)
	}
	fields["cust_no"] = strconv.FormatInt(order.CustNo, 10)

	return s.integrity.Apply(ctx, integrity.KindPay, integrity.OpCreate, fields)
}

// IsPaid reports whether the order has a pay row
func (s *PaymentService) IsPaid(ctx context.Context, orderNo int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Pay{}).Where("order_no = ?", orderNo).Count(&count).Error
	return count > 0, err
}
