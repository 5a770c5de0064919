package integrity

import (
	"sort"
	"strings"
)

// Table names of the retail schema.
const (
	TableCustomer = "customer"
	TableProduct  = "product"
	TableSupplier = "supplier"
	TableDelivery = "delivery"
	TableOrders   = "orders"
	TableContains = "contains"
	TablePay      = "pay"
	TableProcess  = "process"
)

// QuantityPrefix prefixes the per-SKU quantity fields of an order form.
const QuantityPrefix = "qty_"

// UpdateMode says whether a field may be changed after creation.
type UpdateMode int

const (
	UpdateNever UpdateMode = iota
	UpdateOptional
	UpdateRequired
)

// Ref points a field at the column it must reference.
type Ref struct {
	Table  string
	Column string
	Label  string
}

// FieldRule describes one input field of an entity.
type FieldRule struct {
	Name      string
	Label     string
	Column    string
	Format    Format
	Required  bool
	MaxLen    int
	Unique    bool
	Duplicate string
	Ref       *Ref
	Update    UpdateMode
}

func (f FieldRule) duplicateMessage() string {
	if f.Duplicate != "" {
		return f.Duplicate
	}
	return f.Label + " already exists."
}

// LineItems describes the child rows an entity is created with: one row per
// catalog item whose quantity field is filled in.
type LineItems struct {
	Prefix    string
	Label     string
	Table     string
	KeyColumn string
	Column    string
	QtyColumn string
	Catalog   Ref
	Empty     string
}

type line struct {
	Item string
	Qty  string
}

// present returns the filled-in lines ordered by item.
func (l *LineItems) present(fields Fields) []line {
	var lines []line
	for name := range fields {
		if !strings.HasPrefix(name, l.Prefix) || !fields.Has(name) {
			continue
		}
		lines = append(lines, line{Item: strings.TrimPrefix(name, l.Prefix), Qty: fields.Get(name)})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Item < lines[j].Item })
	return lines
}

// EntityRules is the complete rule set of one entity kind.
type EntityRules struct {
	Kind    Kind
	Name    string
	Table   string
	Key     string
	Fields  []FieldRule
	Lines   *LineItems
	Cascade func(key any) []Statement
}

// KeyRule returns the rule of the identifying field.
func (e *EntityRules) KeyRule() FieldRule {
	for _, f := range e.Fields {
		if f.Name == e.Key {
			return f
		}
	}
	return FieldRule{Name: e.Key, Label: e.Key, Column: e.Key}
}

// Updatable reports whether the entity accepts OpUpdate.
func (e *EntityRules) Updatable() bool {
	for _, f := range e.Fields {
		if f.Name != e.Key && f.Update != UpdateNever {
			return true
		}
	}
	return false
}

// active returns the fields taking part in op, paired with their required flag.
func (e *EntityRules) active(op Operation) ([]FieldRule, []bool) {
	var rules []FieldRule
	var required []bool
	for _, f := range e.Fields {
		switch op {
		case OpCreate:
			rules = append(rules, f)
			required = append(required, f.Required)
		case OpUpdate:
			if f.Name == e.Key {
				rules = append(rules, f)
				required = append(required, true)
			} else if f.Update != UpdateNever {
				rules = append(rules, f)
				required = append(required, f.Update == UpdateRequired)
			}
		case OpDelete:
			if f.Name == e.Key {
				rules = append(rules, f)
				required = append(required, true)
			}
		}
	}
	return rules, required
}

// RuleSet maps each kind to its rules.
type RuleSet map[Kind]*EntityRules

func (rs RuleSet) lookup(kind Kind) (*EntityRules, error) {
	rules, ok := rs[kind]
	if !ok {
		return nil, reject(ReasonUnsupported, "", "Unknown entity %q.", string(kind))
	}
	return rules, nil
}

// DefaultRules returns the rules of the retail schema.
func DefaultRules() RuleSet {
	customerRef := &Ref{Table: TableCustomer, Column: "cust_no", Label: "Customer"}
	productRef := &Ref{Table: TableProduct, Column: "sku", Label: "Product"}
	orderRef := &Ref{Table: TableOrders, Column: "order_no", Label: "Order"}

	return RuleSet{
		KindCustomer: {
			Kind:  KindCustomer,
			Name:  "Customer",
			Table: TableCustomer,
			Key:   "cust_no",
			Fields: []FieldRule{
				{Name: "cust_no", Label: "Customer Number", Column: "cust_no", Format: FormatInteger, Required: true, Unique: true},
				{Name: "name", Label: "Name", Column: "name", Required: true, MaxLen: 80, Update: UpdateOptional},
				{Name: "email", Label: "Email", Column: "email", Format: FormatEmail, Required: true, MaxLen: 254, Unique: true, Update: UpdateOptional},
				{Name: "phone", Label: "Phone", Column: "phone", Format: FormatPhone, MaxLen: 15, Update: UpdateOptional},
				{Name: "address", Label: "Address", Column: "address", MaxLen: 255, Update: UpdateOptional},
			},
			Cascade: customerCascade,
		},
		KindProduct: {
			Kind:  KindProduct,
			Name:  "Product",
			Table: TableProduct,
			Key:   "sku",
			Fields: []FieldRule{
				{Name: "sku", Label: "SKU", Column: "sku", Required: true, MaxLen: 25, Unique: true},
				{Name: "name", Label: "Name", Column: "name", Required: true, MaxLen: 200, Update: UpdateOptional},
				{Name: "description", Label: "Description", Column: "description", MaxLen: 2000, Update: UpdateOptional},
				{Name: "price", Label: "Price", Column: "price", Format: FormatPrice, Required: true, Update: UpdateRequired},
				{Name: "ean", Label: "EAN", Column: "ean", Format: FormatEAN, MaxLen: 13, Unique: true},
			},
			Cascade: productCascade,
		},
		KindSupplier: {
			Kind:  KindSupplier,
			Name:  "Supplier",
			Table: TableSupplier,
			Key:   "tin",
			Fields: []FieldRule{
				{Name: "tin", Label: "TIN", Column: "tin", Required: true, MaxLen: 20, Unique: true},
				{Name: "name", Label: "Name", Column: "name", MaxLen: 200, Update: UpdateOptional},
				{Name: "address", Label: "Address", Column: "address", MaxLen: 255, Update: UpdateOptional},
				{Name: "sku", Label: "Product SKU", Column: "sku", Required: true, MaxLen: 25, Ref: productRef, Update: UpdateOptional},
				{Name: "date", Label: "Date", Column: "date", Format: FormatDate, Update: UpdateOptional},
			},
			Cascade: supplierCascade,
		},
		KindOrder: {
			Kind:  KindOrder,
			Name:  "Order",
			Table: TableOrders,
			Key:   "order_no",
			Fields: []FieldRule{
				{Name: "order_no", Label: "Order Number", Column: "order_no", Format: FormatInteger, Required: true, Unique: true},
				{Name: "cust_no", Label: "Customer Number", Column: "cust_no", Format: FormatInteger, Required: true, Ref: customerRef},
				{Name: "date", Label: "Date", Column: "date", Format: FormatDate, Required: true},
			},
			Lines: &LineItems{
				Prefix:    QuantityPrefix,
				Label:     "Quantity",
				Table:     TableContains,
				KeyColumn: "order_no",
				Column:    "sku",
				QtyColumn: "qty",
				Catalog:   *productRef,
				Empty:     "Order must include a product.",
			},
			Cascade: orderCascade,
		},
		KindPay: {
			Kind:  KindPay,
			Name:  "Payment",
			Table: TablePay,
			Key:   "order_no",
			Fields: []FieldRule{
				{Name: "order_no", Label: "Order Number", Column: "order_no", Format: FormatInteger, Required: true, Unique: true, Duplicate: "Order already paid.", Ref: orderRef},
				{Name: "cust_no", Label: "Customer Number", Column: "cust_no", Format: FormatInteger, Required: true, Ref: customerRef},
			},
		},
	}
}
