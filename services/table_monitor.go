package services

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/retail-manager/integrity"
	"github.com/yeremiapane/retail-manager/utils"
	"gorm.io/gorm"
)

var (
	tableRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "retail",
		Name:      "table_rows",
		Help:      "Row count per table, sampled periodically.",
	}, []string{"table"})

	unpaidOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "retail",
		Name:      "unpaid_orders",
		Help:      "Orders without a pay row, sampled periodically.",
	})
)

var monitoredTables = []string{
	integrity.TableCustomer,
	integrity.TableProduct,
	integrity.TableSupplier,
	integrity.TableDelivery,
	integrity.TableOrders,
	integrity.TableContains,
	integrity.TablePay,
	integrity.TableProcess,
}

// TableMonitor samples table sizes into gauges on a fixed interval.
type TableMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration

	stopOnce sync.Once
}

func NewTableMonitor(db *gorm.DB, interval time.Duration) *TableMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &TableMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: interval,
	}
}

func (tm *TableMonitor) Start() {
	go func() {
		ticker := time.NewTicker(tm.Interval)
		defer ticker.Stop()

		tm.Sample(context.Background())
		for {
			select {
			case <-ticker.C:
				tm.Sample(context.Background())
			case <-tm.StopChan:
				return
			}
		}
	}()
	utils.InfoLogger.WithField("interval", tm.Interval).Info("table monitor started")
}

// Stop ends the sampling loop. Calling it more than once is a no-op.
func (tm *TableMonitor) Stop() {
	tm.stopOnce.Do(func() { close(tm.StopChan) })
}

// Sample counts every table once and returns the counts it recorded.
func (tm *TableMonitor) Sample(ctx context.Context) map[string]int64 {
	counts := make(map[string]int64, len(monitoredTables)+1)
	db := tm.DB.WithContext(ctx)

	for _, table := range monitoredTables {
		var n int64
		if err := db.Table(table).Count(&n).Error; err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{"table": table}).WithError(err).Error("count rows")
			continue
		}
		tableRows.WithLabelValues(table).Set(float64(n))
		counts[table] = n
	}

	var unpaid int64
	err := db.Table(integrity.TableOrders).
		Where("order_no NOT IN (SELECT order_no FROM pay)").
		Count(&unpaid).Error
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("count unpaid orders")
		return counts
	}
	unpaidOrders.Set(float64(unpaid))
	counts["unpaid"] = unpaid
	return counts
}
