package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/retail-manager/config"
	"github.com/yeremiapane/retail-manager/database"
	"github.com/yeremiapane/retail-manager/integrity"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", DSN: ":memory:", ConnectRetries: 1})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func mustApply(t *testing.T, svc *IntegrityService, kind integrity.Kind, fields integrity.Fields) *Outcome {
	t.Helper()
	out, err := svc.Apply(context.Background(), kind, integrity.OpCreate, fields)
	require.NoError(t, err)
	return out
}

func count(t *testing.T, db *gorm.DB, table string, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

// seedShop creates two customers, two products and three orders:
// 10 (A only, paid, processed), 11 (A and B), 12 (B only, customer 2).
func seedShop(t *testing.T, db *gorm.DB, svc *IntegrityService) {
	t.Helper()
	mustApply(t, svc, integrity.KindCustomer, integrity.Fields{"cust_no": "1", "name": "Ana", "email": "ana@example.com"})
	mustApply(t, svc, integrity.KindCustomer, integrity.Fields{"cust_no": "2", "name": "Bruno", "email": "bruno@example.com"})
	mustApply(t, svc, integrity.KindProduct, integrity.Fields{"sku": "A", "name": "Apple", "price": "1.50"})
	mustApply(t, svc, integrity.KindProduct, integrity.Fields{"sku": "B", "name": "Bread", "price": "2.25"})
	mustApply(t, svc, integrity.KindSupplier, integrity.Fields{"tin": "S1", "sku": "A"})
	mustApply(t, svc, integrity.KindSupplier, integrity.Fields{"tin": "S2", "sku": "B"})
	mustApply(t, svc, integrity.KindOrder, integrity.Fields{"order_no": "10", "cust_no": "1", "date": "2024-03-01", "qty_A": "2"})
	mustApply(t, svc, integrity.KindOrder, integrity.Fields{"order_no": "11", "cust_no": "1", "date": "2024-03-02", "qty_A": "1", "qty_B": "4"})
	mustApply(t, svc, integrity.KindOrder, integrity.Fields{"order_no": "12", "cust_no": "2", "date": "2024-03-03", "qty_B": "1"})
	mustApply(t, svc, integrity.KindPay, integrity.Fields{"order_no": "10", "cust_no": "1"})

	require.NoError(t, db.Exec("INSERT INTO delivery (address, tin) VALUES (?, ?)", "Warehouse 1", "S1").Error)
	require.NoError(t, db.Exec("INSERT INTO delivery (address, tin) VALUES (?, ?)", "Warehouse 2", "S2").Error)
	require.NoError(t, db.Exec("INSERT INTO process (ssn, order_no) VALUES (?, ?)", "123-45-6789", 10).Error)
	require.NoError(t, db.Exec("INSERT INTO process (ssn, order_no) VALUES (?, ?)", "123-45-6789", 12).Error)
}
