package commands

import (
	"github.com/spf13/cobra"
	"github.com/yeremiapane/retail-manager/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the retail schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)
		return database.Migrate(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
