package cli

import (
	"warehouse-inventory/config"
	"warehouse-inventory/orm"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		// Opening the database migrates it
		db, err := orm.InitDB(config.Cfg)
		if err != nil {
			return err
		}

		log.Info().Str("driver", config.Cfg.Database.Driver).Msg("Schema is up to date")

		return db.Close()
	},
}
