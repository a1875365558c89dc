package cmd

import (
	"log"

	"github.com/handleme/gallery/config"
	"github.com/handleme/gallery/database"
	"github.com/spf13/cobra"
)

// migrateCmd runs the schema migration and seeds reference data, then exits.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migration and exit",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig()
		cfg := config.Get()

		db, err := database.NewDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		if err := database.SeedDefaultTags(db); err != nil {
			log.Fatalf("Failed to seed default tags: %v", err)
		}

		log.Println("Database migrated successfully")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
