package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/retail-manager/integrity"
	"github.com/yeremiapane/retail-manager/utils"
	"gorm.io/gorm"
)

// Outcome summarizes a committed mutation.
type Outcome struct {
	Kind         integrity.Kind      `json:"kind"`
	Operation    integrity.Operation `json:"operation"`
	Key          string              `json:"key"`
	Statements   int                 `json:"statements"`
	RowsAffected int64               `json:"rows_affected"`
}

// IntegrityService validates a request against a fresh unique snapshot, builds
// its statement list and runs it in a single transaction.
type IntegrityService struct {
	db     *gorm.DB
	engine *integrity.Engine
}

func NewIntegrityService(db *gorm.DB, engine *integrity.Engine) *IntegrityService {
	if engine == nil {
		engine = integrity.New()
	}
	return &IntegrityService{db: db, engine: engine}
}

// Engine exposes the rule engine, e.g. for building form descriptors.
func (s *IntegrityService) Engine() *integrity.Engine {
	return s.engine
}

// Apply runs a create or update. Every error it returns is a *integrity.Rejection.
func (s *IntegrityService) Apply(ctx context.Context, kind integrity.Kind, op integrity.Operation, fields integrity.Fields) (*Outcome, error) {
	rules, err := s.engine.Rules(kind)
	if err != nil {
		return nil, s.fail(ctx, kind, op, err)
	}
	if op == integrity.OpDelete {
		return s.Delete(ctx, kind, fields.Get(rules.Key))
	}

	snap, err := s.LoadSnapshot(ctx, kind, op, fields)
	if err != nil {
		return nil, s.fail(ctx, kind, op, err)
	}
	if err := s.engine.Validate(kind, op, fields, snap); err != nil {
		return nil, s.fail(ctx, kind, op, err)
	}
	stmts, err := s.engine.Build(kind, op, fields)
	if err != nil {
		return nil, s.fail(ctx, kind, op, err)
	}
	return s.run(ctx, kind, op, fields.Get(rules.Key), stmts)
}

// Delete runs the cascade of kind for key.
func (s *IntegrityService) Delete(ctx context.Context, kind integrity.Kind, key string) (*Outcome, error) {
	stmts, err := s.engine.PlanDelete(kind, key)
	if err != nil {
		return nil, s.fail(ctx, kind, integrity.OpDelete, err)
	}
	return s.run(ctx, kind, integrity.OpDelete, key, stmts)
}

func (s *IntegrityService) run(ctx context.Context, kind integrity.Kind, op integrity.Operation, key string, stmts []integrity.Statement) (*Outcome, error) {
	affected, err := s.Execute(ctx, stmts)
	if err != nil {
		return nil, s.fail(ctx, kind, op, err)
	}

	mutationsTotal.WithLabelValues(string(kind), string(op), "committed").Inc()
	rowsAffected.WithLabelValues(string(kind), string(op)).Add(float64(affected))
	utils.InfoLogger.WithFields(logrus.Fields{
		"kind":       kind,
		"operation":  op,
		"key":        key,
		"statements": len(stmts),
		"rows":       affected,
		"request_id": utils.RequestID(ctx),
	}).Info("mutation committed")

	return &Outcome{Kind: kind, Operation: op, Key: key, Statements: len(stmts), RowsAffected: affected}, nil
}

// Execute runs stmts in order inside one transaction and returns the total
// number of affected rows. The first failing statement rolls everything back.
func (s *IntegrityService) Execute(ctx context.Context, stmts []integrity.Statement) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, stmt := range stmts {
			query, args := stmt.SQL()
			res := tx.Exec(query, args...)
			if res.Error != nil {
				return fmt.Errorf("statement %d (%s %s): %w", i+1, stmt.Verb, stmt.Table, res.Error)
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// LoadSnapshot reads the unique and referenced values Validate needs.
func (s *IntegrityService) LoadSnapshot(ctx context.Context, kind integrity.Kind, op integrity.Operation, fields integrity.Fields) (*integrity.Snapshot, error) {
	queries, err := s.engine.SnapshotQueries(kind, op, fields)
	if err != nil {
		return nil, err
	}
	snap := integrity.NewSnapshot()
	for _, q := range queries {
		if err := s.loadInto(ctx, snap, q); err != nil {
			return nil, fmt.Errorf("load snapshot %s.%s: %w", q.Table, q.Column, err)
		}
	}
	return snap, nil
}

func (s *IntegrityService) loadInto(ctx context.Context, snap *integrity.Snapshot, q integrity.SnapshotQuery) error {
	query := s.db.WithContext(ctx).Table(q.Table).Select(q.Column, q.Owner)
	if q.Values != nil {
		query = query.Where(fmt.Sprintf("%s IN ?", q.Column), q.Values)
	}
	rows, err := query.Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var value, owner sql.NullString
		if err := rows.Scan(&value, &owner); err != nil {
			return err
		}
		if value.Valid {
			snap.Add(q.Table, q.Column, value.String, owner.String)
		}
	}
	return rows.Err()
}

// fail logs and counts a rejected request and converts err to a rejection.
func (s *IntegrityService) fail(ctx context.Context, kind integrity.Kind, op integrity.Operation, err error) error {
	rej := classifyStoreError(err)
	mutationsTotal.WithLabelValues(string(kind), string(op), "rejected").Inc()
	rejectionsTotal.WithLabelValues(string(kind), rej.Reason.String()).Inc()

	requestID := utils.RequestID(ctx)
	entry := utils.InfoLogger.WithFields(logrus.Fields{
		"kind":       kind,
		"operation":  op,
		"reason":     rej.Reason.String(),
		"request_id": requestID,
	})
	if rej.Reason == integrity.ReasonStoreFailure {
		utils.ErrorLogger.WithFields(logrus.Fields{"kind": kind, "operation": op, "request_id": requestID}).
			WithError(err).Error("mutation failed")
	} else {
		entry.Info(rej.Message)
	}
	return rej
}
