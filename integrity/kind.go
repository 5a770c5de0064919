// Package integrity holds the validation, mutation and cascade rules that keep
// the retail tables consistent. It never talks to a database: it turns field
// sets into ordered Statement lists that a caller executes in one transaction.
package integrity

import "strings"

// Kind names an entity the service can mutate.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindProduct  Kind = "product"
	KindSupplier Kind = "supplier"
	KindOrder    Kind = "order"
	KindPay      Kind = "pay"
)

// Operation is the mutation requested on an entity.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Fields is the raw, string-keyed input submitted by the presentation layer.
// A blank value is treated exactly like a missing one.
type Fields map[string]string

// Get returns the trimmed value of name.
func (f Fields) Get(name string) string {
	return strings.TrimSpace(f[name])
}

// Has reports whether name carries a non-blank value.
func (f Fields) Has(name string) bool {
	return f.Get(name) != ""
}
