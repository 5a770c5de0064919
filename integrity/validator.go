package integrity

import "unicode/utf8"

// Engine interprets a RuleSet. One Engine serves every entity kind.
type Engine struct {
	rules RuleSet
}

// NewEngine builds an engine over rules.
func NewEngine(rules RuleSet) *Engine {
	return &Engine{rules: rules}
}

// New returns an engine over DefaultRules.
func New() *Engine {
	return NewEngine(DefaultRules())
}

// Rules returns the rules of kind.
func (e *Engine) Rules(kind Kind) (*EntityRules, error) {
	return e.rules.lookup(kind)
}

// Validate checks fields for op on kind against snap and returns the first
// failing rule as a *Rejection, or nil. Rules run in phases: required fields,
// formats, lengths, line items, references and existence, then uniqueness.
func (e *Engine) Validate(kind Kind, op Operation, fields Fields, snap *Snapshot) error {
	rules, err := e.rules.lookup(kind)
	if err != nil {
		return err
	}
	switch op {
	case OpCreate, OpDelete:
	case OpUpdate:
		if !rules.Updatable() {
			return reject(ReasonUnsupported, "", "%s cannot be changed.", rules.Name)
		}
	default:
		return reject(ReasonUnsupported, "", "Unknown operation %q.", string(op))
	}

	active, required := rules.active(op)

	for i, f := range active {
		if required[i] && !fields.Has(f.Name) {
			return reject(ReasonMissingField, f.Name, "%s is required.", f.Label)
		}
	}

	for _, f := range active {
		if !fields.Has(f.Name) {
			continue
		}
		if msg := checkFormat(f.Format, f.Label, fields.Get(f.Name)); msg != "" {
			return &Rejection{Reason: ReasonInvalidFormat, Field: f.Name, Message: msg}
		}
	}

	var lines []line
	if rules.Lines != nil && op == OpCreate {
		lines = rules.Lines.present(fields)
		for _, l := range lines {
			if n, ok := parseDigits(l.Qty); !ok || n <= 0 {
				return reject(ReasonInvalidFormat, rules.Lines.Prefix+l.Item,
					"%s for %s must be a positive integer.", rules.Lines.Label, l.Item)
			}
		}
	}

	for _, f := range active {
		if f.MaxLen > 0 && utf8.RuneCountInString(fields.Get(f.Name)) > f.MaxLen {
			return reject(ReasonLengthExceeded, f.Name, "%s must be at most %d characters.", f.Label, f.MaxLen)
		}
	}

	if rules.Lines != nil && op == OpCreate && len(lines) == 0 {
		return reject(ReasonMissingField, "", "%s", rules.Lines.Empty)
	}

	if op == OpDelete {
		return nil
	}

	keyRule := rules.KeyRule()
	key := canonical(keyRule.Format, fields.Get(rules.Key))

	if op == OpUpdate {
		if _, ok := snap.Owner(rules.Table, keyRule.Column, key); !ok {
			return reject(ReasonNotFound, rules.Key, "%s does not exist.", rules.Name)
		}
	}

	for _, f := range active {
		if f.Ref == nil || !fields.Has(f.Name) {
			continue
		}
		if _, ok := snap.Owner(f.Ref.Table, f.Ref.Column, canonical(f.Format, fields.Get(f.Name))); !ok {
			return reject(ReasonReferentialViolation, f.Name, "%s does not exist.", f.Ref.Label)
		}
	}
	if rules.Lines != nil {
		cat := rules.Lines.Catalog
		for _, l := range lines {
			if _, ok := snap.Owner(cat.Table, cat.Column, l.Item); !ok {
				return reject(ReasonReferentialViolation, rules.Lines.Prefix+l.Item, "%s %s does not exist.", cat.Label, l.Item)
			}
		}
	}

	for _, f := range active {
		if !f.Unique || !fields.Has(f.Name) {
			continue
		}
		if op == OpUpdate && f.Name == rules.Key {
			continue
		}
		owner, ok := snap.Owner(rules.Table, f.Column, canonical(f.Format, fields.Get(f.Name)))
		if !ok {
			continue
		}
		if op == OpUpdate && owner == key {
			continue
		}
		return reject(ReasonDuplicateKey, f.Name, "%s", f.duplicateMessage())
	}
	return nil
}
