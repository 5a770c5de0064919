package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/retail-manager/database"
	"github.com/yeremiapane/retail-manager/integrity"
	"github.com/yeremiapane/retail-manager/services"
	"github.com/yeremiapane/retail-manager/utils"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a small sample data set",
	Long: `Insert sample customers, products, suppliers and orders through the same
rules the API applies. Rows that already exist are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		svc := services.NewIntegrityService(db, nil)
		return Seed(cmd.Context(), svc)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedRow struct {
	kind   integrity.Kind
	fields integrity.Fields
}

var sampleData = []seedRow{
	{integrity.KindCustomer, integrity.Fields{"cust_no": "1", "name": "Ana Silva", "email": "ana@example.com", "phone": "+351912345678", "address": "Rua Augusta 10, Lisboa"}},
	{integrity.KindCustomer, integrity.Fields{"cust_no": "2", "name": "Bruno Costa", "email": "bruno@example.com"}},
	{integrity.KindProduct, integrity.Fields{"sku": "COF-250", "name": "Coffee beans 250g", "price": "6.49", "ean": "5601234567890"}},
	{integrity.KindProduct, integrity.Fields{"sku": "TEA-100", "name": "Green tea 100g", "description": "Loose leaf", "price": "4.20"}},
	{integrity.KindProduct, integrity.Fields{"sku": "MUG-01", "name": "Ceramic mug", "price": "9.90"}},
	{integrity.KindSupplier, integrity.Fields{"tin": "PT500100200", "name": "Torrefacao Lda", "sku": "COF-250", "date": "2024-01-15"}},
	{integrity.KindSupplier, integrity.Fields{"tin": "PT500300400", "name": "Ceramicas SA", "address": "Zona Industrial, Aveiro", "sku": "MUG-01"}},
	{integrity.KindOrder, integrity.Fields{"order_no": "1001", "cust_no": "1", "date": "2024-03-01", "qty_COF-250": "2", "qty_MUG-01": "1"}},
	{integrity.KindOrder, integrity.Fields{"order_no": "1002", "cust_no": "2", "date": "2024-03-02", "qty_TEA-100": "3"}},
	{integrity.KindPay, integrity.Fields{"order_no": "1001", "cust_no": "1"}},
}

// Seed applies the sample data set. Duplicates are skipped so seeding twice
// is harmless.
func Seed(ctx context.Context, svc *services.IntegrityService) error {
	if ctx == nil {
		ctx = context.Background()
	}
	inserted := 0
	for _, row := range sampleData {
		_, err := svc.Apply(ctx, row.kind, integrity.OpCreate, row.fields)
		if errors.Is(err, integrity.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed %s: %w", row.kind, err)
		}
		inserted++
	}
	utils.InfoLogger.WithField("rows", inserted).Info("seed completed")
	return nil
}
