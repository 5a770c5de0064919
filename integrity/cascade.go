package integrity

// PlanDelete returns the cascade that removes kind's row keyed key together
// with every dependent row, deepest dependency first. Running a plan for a key
// that is already gone deletes nothing.
func (e *Engine) PlanDelete(kind Kind, key string) ([]Statement, error) {
	rules, err := e.rules.lookup(kind)
	if err != nil {
		return nil, err
	}
	if rules.Cascade == nil {
		return nil, reject(ReasonUnsupported, "", "%s cannot be deleted.", rules.Name)
	}
	fields := Fields{rules.Key: key}
	if err := e.Validate(kind, OpDelete, fields, nil); err != nil {
		return nil, err
	}
	keyRule := rules.KeyRule()
	return rules.Cascade(convert(keyRule.Format, fields.Get(rules.Key))), nil
}

const (
	ordersOfCustomer  = "order_no IN (SELECT order_no FROM orders WHERE cust_no = ?)"
	suppliersOfSKU    = "tin IN (SELECT tin FROM supplier WHERE sku = ?)"
	orderWithoutLines = "order_no NOT IN (SELECT order_no FROM contains)"
)

func customerCascade(key any) []Statement {
	return []Statement{
		Delete(TableProcess, Condition{SQL: ordersOfCustomer, Args: []any{key}}),
		Delete(TablePay, Condition{SQL: "cust_no = ? OR " + ordersOfCustomer, Args: []any{key, key}}),
		Delete(TableContains, Condition{SQL: ordersOfCustomer, Args: []any{key}}),
		Delete(TableOrders, Eq("cust_no", key)),
		Delete(TableCustomer, Eq("cust_no", key)),
	}
}

// productCascade drops the product's lines and then sweeps every order left
// without lines. Orders are never created empty, so the sweep only reaches
// orders that contained nothing but this product.
func productCascade(key any) []Statement {
	return []Statement{
		Delete(TableDelivery, Condition{SQL: suppliersOfSKU, Args: []any{key}}),
		Delete(TableSupplier, Eq("sku", key)),
		Delete(TableContains, Eq("sku", key)),
		Delete(TableProcess, Condition{SQL: orderWithoutLines}),
		Delete(TablePay, Condition{SQL: orderWithoutLines}),
		Delete(TableOrders, Condition{SQL: orderWithoutLines}),
		Delete(TableProduct, Eq("sku", key)),
	}
}

func supplierCascade(key any) []Statement {
	return []Statement{
		Delete(TableDelivery, Eq("tin", key)),
		Delete(TableSupplier, Eq("tin", key)),
	}
}

func orderCascade(key any) []Statement {
	return []Statement{
		Delete(TableProcess, Eq("order_no", key)),
		Delete(TablePay, Eq("order_no", key)),
		Delete(TableContains, Eq("order_no", key)),
		Delete(TableOrders, Eq("order_no", key)),
	}
}
