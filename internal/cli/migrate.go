package cli

import (
	"music_learning_backend/internal/config"
	"music_learning_backend/pkg/database"
	"music_learning_backend/pkg/logger"

	"github.com/spf13/cobra"
)

// NewMigrateCmd applies the schema and exits.
func NewMigrateCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			return runMigrations(cfg)
		},
	}
}

func runMigrations(cfg *config.Config) error {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		return err
	}
	defer database.Close(db)

	logger.Log.Info("migrations applied")
	return nil
}
