package integrity

import "sort"

// Snapshot holds the unique-column and referenced-column values read just
// before a request is validated. It is not transactionally fenced: the store's
// own constraints remain the final word on uniqueness.
type Snapshot struct {
	entries map[string]map[string]string
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{entries: make(map[string]map[string]string)}
}

func snapshotKey(table, column string) string {
	return table + "." + column
}

// Add records that value is present in table.column on the row keyed owner.
func (s *Snapshot) Add(table, column, value, owner string) {
	k := snapshotKey(table, column)
	if s.entries[k] == nil {
		s.entries[k] = make(map[string]string)
	}
	s.entries[k][value] = owner
}

// Owner returns the key of the row holding value in table.column.
func (s *Snapshot) Owner(table, column, value string) (string, bool) {
	if s == nil {
		return "", false
	}
	owner, ok := s.entries[snapshotKey(table, column)][value]
	return owner, ok
}

// Values lists the distinct values recorded for table.column, sorted.
func (s *Snapshot) Values(table, column string) []string {
	if s == nil {
		return nil
	}
	set := s.entries[snapshotKey(table, column)]
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// SnapshotQuery asks the store for Column (and the Owner column of the same
// row) from Table. A nil Values means every row; otherwise only rows whose
// Column is one of Values.
type SnapshotQuery struct {
	Table  string
	Column string
	Owner  string
	Values []any
}

// SnapshotQueries lists what must be read before Validate can decide on
// kind/op/fields.
func (e *Engine) SnapshotQueries(kind Kind, op Operation, fields Fields) ([]SnapshotQuery, error) {
	rules, err := e.rules.lookup(kind)
	if err != nil {
		return nil, err
	}
	if op == OpDelete {
		return nil, nil
	}

	keyCol := rules.KeyRule().Column
	var queries []SnapshotQuery
	active, _ := rules.active(op)
	for _, f := range active {
		value := fields.Get(f.Name)
		if value == "" || checkFormat(f.Format, f.Label, value) != "" {
			continue
		}
		arg := convert(f.Format, value)
		if op == OpUpdate && f.Name == rules.Key {
			queries = append(queries, SnapshotQuery{Table: rules.Table, Column: keyCol, Owner: keyCol, Values: []any{arg}})
		}
		if f.Ref != nil {
			queries = append(queries, SnapshotQuery{Table: f.Ref.Table, Column: f.Ref.Column, Owner: f.Ref.Column, Values: []any{arg}})
		}
		if f.Unique && !(op == OpUpdate && f.Name == rules.Key) {
			queries = append(queries, SnapshotQuery{Table: rules.Table, Column: f.Column, Owner: keyCol, Values: []any{arg}})
		}
	}
	if rules.Lines != nil && op == OpCreate {
		cat := rules.Lines.Catalog
		queries = append(queries, SnapshotQuery{Table: cat.Table, Column: cat.Column, Owner: cat.Column})
	}
	return queries, nil
}
