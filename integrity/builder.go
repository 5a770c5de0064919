package integrity

// Build turns validated fields into the ordered statements of op on kind.
//
// Create emits the INSERT of every required column first, then one UPDATE per
// present optional field scoped to the new key, then one INSERT per line item.
// Update emits one UPDATE per present updatable field. Delete defers to
// PlanDelete.
func (e *Engine) Build(kind Kind, op Operation, fields Fields) ([]Statement, error) {
	rules, err := e.rules.lookup(kind)
	if err != nil {
		return nil, err
	}

	keyRule := rules.KeyRule()
	if !fields.Has(rules.Key) {
		return nil, reject(ReasonMissingField, rules.Key, "%s is required.", keyRule.Label)
	}
	key := convert(keyRule.Format, fields.Get(rules.Key))
	scope := Eq(keyRule.Column, key)

	switch op {
	case OpCreate:
		return buildCreate(rules, fields, key, scope)
	case OpUpdate:
		return buildUpdate(rules, fields, scope)
	case OpDelete:
		return e.PlanDelete(kind, fields.Get(rules.Key))
	default:
		return nil, reject(ReasonUnsupported, "", "Unknown operation %q.", string(op))
	}
}

func buildCreate(rules *EntityRules, fields Fields, key any, scope Condition) ([]Statement, error) {
	var lines []line
	if rules.Lines != nil {
		lines = rules.Lines.present(fields)
		if len(lines) == 0 {
			return nil, reject(ReasonMissingField, "", "%s", rules.Lines.Empty)
		}
	}

	var columns []string
	var values []any
	for _, f := range rules.Fields {
		if !f.Required {
			continue
		}
		if !fields.Has(f.Name) {
			return nil, reject(ReasonMissingField, f.Name, "%s is required.", f.Label)
		}
		columns = append(columns, f.Column)
		values = append(values, convert(f.Format, fields.Get(f.Name)))
	}

	stmts := []Statement{Insert(rules.Table, columns, values)}
	for _, f := range rules.Fields {
		if f.Required || !fields.Has(f.Name) {
			continue
		}
		stmts = append(stmts, Update(rules.Table, f.Column, convert(f.Format, fields.Get(f.Name)), scope))
	}

	if rules.Lines != nil {
		l := rules.Lines
		for _, item := range lines {
			stmts = append(stmts, Insert(l.Table,
				[]string{l.KeyColumn, l.Column, l.QtyColumn},
				[]any{key, item.Item, convert(FormatInteger, item.Qty)}))
		}
	}
	return stmts, nil
}

func buildUpdate(rules *EntityRules, fields Fields, scope Condition) ([]Statement, error) {
	if !rules.Updatable() {
		return nil, reject(ReasonUnsupported, "", "%s cannot be changed.", rules.Name)
	}
	var stmts []Statement
	for _, f := range rules.Fields {
		if f.Name == rules.Key || f.Update == UpdateNever {
			continue
		}
		if !fields.Has(f.Name) {
			if f.Update == UpdateRequired {
				return nil, reject(ReasonMissingField, f.Name, "%s is required.", f.Label)
			}
			continue
		}
		stmts = append(stmts, Update(rules.Table, f.Column, convert(f.Format, fields.Get(f.Name)), scope))
	}
	if len(stmts) == 0 {
		return nil, reject(ReasonMissingField, "", "Nothing to change.")
	}
	return stmts, nil
}
