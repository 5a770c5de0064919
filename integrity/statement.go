package integrity

import (
	"fmt"
	"strings"
)

// Verb is the SQL command a Statement renders to.
type Verb int

const (
	VerbInsert Verb = iota + 1
	VerbUpdate
	VerbDelete
)

func (v Verb) String() string {
	switch v {
	case VerbInsert:
		return "INSERT"
	case VerbUpdate:
		return "UPDATE"
	case VerbDelete:
		return "DELETE"
	default:
		return fmt.Sprintf("verb(%d)", int(v))
	}
}

// Condition is a WHERE predicate with `?` placeholders and its arguments.
type Condition struct {
	SQL  string
	Args []any
}

// Eq builds `column = ?`.
func Eq(column string, value any) Condition {
	return Condition{SQL: column + " = ?", Args: []any{value}}
}

// Statement is one parameterized mutation. Table and column names always come
// from the rule table, never from user input.
type Statement struct {
	Verb    Verb
	Table   string
	Columns []string
	Values  []any
	Where   Condition
}

// Insert builds an INSERT of values into columns.
func Insert(table string, columns []string, values []any) Statement {
	return Statement{Verb: VerbInsert, Table: table, Columns: columns, Values: values}
}

// Update builds a single-column UPDATE.
func Update(table, column string, value any, where Condition) Statement {
	return Statement{Verb: VerbUpdate, Table: table, Columns: []string{column}, Values: []any{value}, Where: where}
}

// Delete builds a DELETE filtered by where.
func Delete(table string, where Condition) Statement {
	return Statement{Verb: VerbDelete, Table: table, Where: where}
}

// SQL renders the statement and returns it with its ordered arguments.
func (s Statement) SQL() (string, []any) {
	var b strings.Builder
	var args []any

	switch s.Verb {
	case VerbInsert:
		b.WriteString("INSERT INTO ")
		b.WriteString(s.Table)
		b.WriteString(" (")
		b.WriteString(strings.Join(s.Columns, ", "))
		b.WriteString(") VALUES (")
		b.WriteString(placeholders(len(s.Columns)))
		b.WriteString(")")
		args = append(args, s.Values...)
	case VerbUpdate:
		b.WriteString("UPDATE ")
		b.WriteString(s.Table)
		b.WriteString(" SET ")
		for i, col := range s.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(col)
			b.WriteString(" = ?")
		}
		args = append(args, s.Values...)
	case VerbDelete:
		b.WriteString("DELETE FROM ")
		b.WriteString(s.Table)
	}

	if s.Where.SQL != "" {
		b.WriteString(" WHERE ")
		b.WriteString(s.Where.SQL)
		args = append(args, s.Where.Args...)
	}
	return b.String(), args
}

func (s Statement) String() string {
	query, _ := s.SQL()
	return query
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
