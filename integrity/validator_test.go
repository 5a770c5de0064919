package integrity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerFields() Fields {
	return Fields{
		"cust_no": "1",
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
	}
}

func requireRejection(t *testing.T, err error, reason Reason, message string) {
	t.Helper()
	require.Error(t, err)
	var rej *Rejection
	require.True(t, errors.As(err, &rej), "expected *Rejection, got %T", err)
	assert.Equal(t, reason, rej.Reason)
	assert.Equal(t, message, rej.Message)
}

func TestValidateCustomerCreate(t *testing.T) {
	engine := New()

	assert.NoError(t, engine.Validate(KindCustomer, OpCreate, customerFields(), NewSnapshot()))

	f := customerFields()
	f["cust_no"] = ""
	requireRejection(t, engine.Validate(KindCustomer, OpCreate, f, nil), ReasonMissingField, "Customer Number is required.")

	f = customerFields()
	f["cust_no"] = "12a"
	requireRejection(t, engine.Validate(KindCustomer, OpCreate, f, nil), ReasonInvalidFormat, "Customer Number must be integer.")

	f = customerFields()
	f["name"] = "   "
	requireRejection(t, engine.Validate(KindCustomer, OpCreate, f, nil), ReasonMissingField, "Name is required.")

	f = customerFields()
	f["email"] = "not-an-email"
	requireRejection(t, engine.Validate(KindCustomer, OpCreate, f, nil), ReasonInvalidFormat, "Email must be a valid email address.")
}

func TestValidateUnsignedIdentifiers(t *testing.T) {
	engine := New()

	for _, v := range []string{"-5", "+5", "5.0", "99999999999999999999"} {
		f := customerFields()
		f["cust_no"] = v
		requireRejection(t, engine.Validate(KindCustomer, OpCreate, f, nil), ReasonInvalidFormat, "Customer Number must be integer.")
	}

	f := customerFields()
	f["cust_no"] = "9007199254740993"
	assert.NoError(t, engine.Validate(KindCustomer, OpCreate, f, NewSnapshot()))

	snap := orderSnapshot()
	order := Fields{"order_no": "10", "cust_no": "1", "date": "2024-03-01", "qty_A": "+2"}
	requireRejection(t, engine.Validate(KindOrder, OpCreate, order, snap), ReasonInvalidFormat,
		"Quantity for A must be a positive integer.")
}

func TestValidateFirstFailingRuleWins(t *testing.T) {
	engine := New()

	// missing email is reported before the malformed customer number
	f := Fields{"cust_no": "abc", "name": "Bob"}
	requireRejection(t, engine.Validate(KindCustomer, OpCreate, f, nil), ReasonMissingField, "Email is required.")

	// format beats uniqueness
	snap := NewSnapshot()
	snap.Add(TableCustomer, "email", "ada@example.com", "9")
	f = customerFields()
	f["phone"] = "12-34"
	requireRejection(t, engine.Validate(KindCustomer, OpCreate, f, snap), ReasonInvalidFormat,
		"Phone must contain only digits, optionally prefixed by +.")
}

func TestValidatePhone(t *testing.T) {
	engine := New()
	cases := []struct {
		phone string
		ok    bool
	}{
		{"+351912345678", true},
		{"912345678", true},
		{"+1234567890123456", false},
		{"91 234", false},
		{"++1", false},
	}
	for _, tc := range cases {
		f := customerFields()
		f["phone"] = tc.phone
		err := engine.Validate(KindCustomer, OpCreate, f, NewSnapshot())
		if tc.ok {
			assert.NoError(t, err, tc.phone)
		} else {
			assert.Error(t, err, tc.phone)
		}
	}
}

func TestValidateCustomerDuplicate(t *testing.T) {
	engine := New()
	snap := NewSnapshot()
	snap.Add(TableCustomer, "cust_no", "1", "1")

	requireRejection(t, engine.Validate(KindCustomer, OpCreate, customerFields(), snap), ReasonDuplicateKey, "Customer Number already exists.")
	assert.True(t, errors.Is(engine.Validate(KindCustomer, OpCreate, customerFields(), snap), ErrDuplicateKey))

	f := customerFields()
	f["cust_no"] = "001"
	requireRejection(t, engine.Validate(KindCustomer, OpCreate, f, snap), ReasonDuplicateKey, "Customer Number already exists.")

	snap = NewSnapshot()
	snap.Add(TableCustomer, "email", "ada@example.com", "7")
	requireRejection(t, engine.Validate(KindCustomer, OpCreate, customerFields(), snap), ReasonDuplicateKey, "Email already exists.")
}

func TestValidateCustomerUpdate(t *testing.T) {
	engine := New()
	snap := NewSnapshot()
	snap.Add(TableCustomer, "cust_no", "1", "1")
	snap.Add(TableCustomer, "email", "ada@example.com", "1")

	// keeping your own email is not a duplicate
	assert.NoError(t, engine.Validate(KindCustomer, OpUpdate, Fields{"cust_no": "1", "email": "ada@example.com"}, snap))

	snap.Add(TableCustomer, "email", "grace@example.com", "2")
	requireRejection(t, engine.Validate(KindCustomer, OpUpdate, Fields{"cust_no": "1", "email": "grace@example.com"}, snap),
		ReasonDuplicateKey, "Email already exists.")

	requireRejection(t, engine.Validate(KindCustomer, OpUpdate, Fields{"cust_no": "5", "name": "X"}, snap),
		ReasonNotFound, "Customer does not exist.")
}

func TestValidateProductPrice(t *testing.T) {
	engine := New()
	base := func(price string) Fields {
		return Fields{"sku": "SKU-1", "name": "Widget", "price": price}
	}

	assert.NoError(t, engine.Validate(KindProduct, OpCreate, base("19.99"), NewSnapshot()))
	assert.NoError(t, engine.Validate(KindProduct, OpCreate, base("1234567890"), NewSnapshot()))
	assert.NoError(t, engine.Validate(KindProduct, OpCreate, base("12345678.90"), NewSnapshot()))

	requireRejection(t, engine.Validate(KindProduct, OpCreate, base("12.345"), nil), ReasonInvalidFormat, "Price must have at most 2 decimal places.")
	requireRejection(t, engine.Validate(KindProduct, OpCreate, base("12345678901"), nil), ReasonInvalidFormat, "Price must have at most 10 digits.")
	requireRejection(t, engine.Validate(KindProduct, OpCreate, base("-5.00"), nil), ReasonInvalidFormat, "Price must be greater than zero.")
	requireRejection(t, engine.Validate(KindProduct, OpCreate, base("0.00"), nil), ReasonInvalidFormat, "Price must be greater than zero.")
	requireRejection(t, engine.Validate(KindProduct, OpCreate, base("abc"), nil), ReasonInvalidFormat, "Price must be a number.")
	requireRejection(t, engine.Validate(KindProduct, OpCreate, base("1e3"), nil), ReasonInvalidFormat, "Price must be a number.")
}

func TestValidateProductLengthAndEAN(t *testing.T) {
	engine := New()

	f := Fields{"sku": "SKU-THAT-IS-DEFINITELY-TOO-LONG", "name": "Widget", "price": "1.00"}
	requireRejection(t, engine.Validate(KindProduct, OpCreate, f, nil), ReasonLengthExceeded, "SKU must be at most 25 characters.")

	f = Fields{"sku": "A", "name": "Widget", "price": "1.00", "ean": "12345678901234"}
	requireRejection(t, engine.Validate(KindProduct, OpCreate, f, nil), ReasonLengthExceeded, "EAN must be at most 13 characters.")

	f["ean"] = "12345X"
	requireRejection(t, engine.Validate(KindProduct, OpCreate, f, nil), ReasonInvalidFormat, "EAN must contain only digits.")

	snap := NewSnapshot()
	snap.Add(TableProduct, "ean", "4006381333931", "B")
	f["ean"] = "4006381333931"
	requireRejection(t, engine.Validate(KindProduct, OpCreate, f, snap), ReasonDuplicateKey, "EAN already exists.")
}

func TestValidateProductUpdateRequiresPrice(t *testing.T) {
	engine := New()
	snap := NewSnapshot()
	snap.Add(TableProduct, "sku", "A", "A")

	requireRejection(t, engine.Validate(KindProduct, OpUpdate, Fields{"sku": "A", "description": "new"}, snap),
		ReasonMissingField, "Price is required.")
	assert.NoError(t, engine.Validate(KindProduct, OpUpdate, Fields{"sku": "A", "price": "3.50"}, snap))
}

func TestValidateSupplier(t *testing.T) {
	engine := New()
	snap := NewSnapshot()
	snap.Add(TableProduct, "sku", "A", "A")

	assert.NoError(t, engine.Validate(KindSupplier, OpCreate, Fields{"tin": "PT123", "sku": "A", "date": "2024-02-29"}, snap))

	requireRejection(t, engine.Validate(KindSupplier, OpCreate, Fields{"tin": "PT123", "sku": "A", "date": "2023-02-29"}, snap),
		ReasonInvalidFormat, "Date must be a date in YYYY-MM-DD format.")
	requireRejection(t, engine.Validate(KindSupplier, OpCreate, Fields{"tin": "PT123", "sku": "Z"}, snap),
		ReasonReferentialViolation, "Product does not exist.")
	requireRejection(t, engine.Validate(KindSupplier, OpCreate, Fields{"tin": "123456789012345678901", "sku": "A"}, snap),
		ReasonLengthExceeded, "TIN must be at most 20 characters.")
}

func orderSnapshot() *Snapshot {
	snap := NewSnapshot()
	snap.Add(TableCustomer, "cust_no", "1", "1")
	snap.Add(TableProduct, "sku", "A", "A")
	snap.Add(TableProduct, "sku", "B", "B")
	return snap
}

func TestValidateOrderCreate(t *testing.T) {
	engine := New()
	f := Fields{"order_no": "10", "cust_no": "1", "date": "2024-05-01", "qty_A": "2", "qty_B": ""}
	assert.NoError(t, engine.Validate(KindOrder, OpCreate, f, orderSnapshot()))

	f = Fields{"order_no": "10", "cust_no": "1", "date": "2024-05-01", "qty_A": "", "qty_B": " "}
	requireRejection(t, engine.Validate(KindOrder, OpCreate, f, orderSnapshot()), ReasonMissingField, "Order must include a product.")

	f = Fields{"order_no": "10", "cust_no": "1", "date": "2024-05-01", "qty_A": "0"}
	requireRejection(t, engine.Validate(KindOrder, OpCreate, f, orderSnapshot()), ReasonInvalidFormat, "Quantity for A must be a positive integer.")

	f = Fields{"order_no": "10", "cust_no": "2", "date": "2024-05-01", "qty_A": "1"}
	requireRejection(t, engine.Validate(KindOrder, OpCreate, f, orderSnapshot()), ReasonReferentialViolation, "Customer does not exist.")

	f = Fields{"order_no": "10", "cust_no": "1", "date": "2024-05-01", "qty_Z": "1"}
	requireRejection(t, engine.Validate(KindOrder, OpCreate, f, orderSnapshot()), ReasonReferentialViolation, "Product Z does not exist.")

	snap := orderSnapshot()
	snap.Add(TableOrders, "order_no", "10", "10")
	f = Fields{"order_no": "10", "cust_no": "1", "date": "2024-05-01", "qty_A": "1"}
	requireRejection(t, engine.Validate(KindOrder, OpCreate, f, snap), ReasonDuplicateKey, "Order Number already exists.")

	requireRejection(t, engine.Validate(KindOrder, OpUpdate, f, snap), ReasonUnsupported, "Order cannot be changed.")
}

func TestValidatePay(t *testing.T) {
	engine := New()
	snap := NewSnapshot()
	snap.Add(TableOrders, "order_no", "10", "10")
	snap.Add(TableCustomer, "cust_no", "1", "1")

	assert.NoError(t, engine.Validate(KindPay, OpCreate, Fields{"order_no": "10", "cust_no": "1"}, snap))
	requireRejection(t, engine.Validate(KindPay, OpCreate, Fields{"order_no": "11", "cust_no": "1"}, snap),
		ReasonReferentialViolation, "Order does not exist.")

	snap.Add(TablePay, "order_no", "10", "10")
	requireRejection(t, engine.Validate(KindPay, OpCreate, Fields{"order_no": "10", "cust_no": "1"}, snap),
		ReasonDuplicateKey, "Order already paid.")
}

func TestValidateUnknownKind(t *testing.T) {
	err := New().Validate(Kind("employee"), OpCreate, Fields{}, nil)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestSnapshotQueries(t *testing.T) {
	engine := New()

	queries, err := engine.SnapshotQueries(KindCustomer, OpCreate, customerFields())
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, SnapshotQuery{Table: TableCustomer, Column: "cust_no", Owner: "cust_no", Values: []any{int64(1)}}, queries[0])
	assert.Equal(t, SnapshotQuery{Table: TableCustomer, Column: "email", Owner: "cust_no", Values: []any{"ada@example.com"}}, queries[1])

	queries, err = engine.SnapshotQueries(KindOrder, OpCreate, Fields{"order_no": "3", "cust_no": "1", "date": "2024-01-01"})
	require.NoError(t, err)
	last := queries[len(queries)-1]
	assert.Equal(t, TableProduct, last.Table)
	assert.Nil(t, last.Values)

	queries, err = engine.SnapshotQueries(KindCustomer, OpDelete, Fields{"cust_no": "1"})
	require.NoError(t, err)
	assert.Empty(t, queries)
}
