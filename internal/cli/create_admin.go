package cli

import (
	"context"
	"fmt"
	"music_learning_backend/internal/config"
	"music_learning_backend/internal/repository"
	"music_learning_backend/internal/service"
	"music_learning_backend/pkg/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewCreateAdminCmd creates an administrator account. Admins cannot be
// registered over HTTP.
func NewCreateAdminCmd(configDir *string) *cobra.Command {
	var in service.RegisterInput
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			db, err := database.InitDB(&cfg.Database, false)
			if err != nil {
				return err
			}
			defer database.Close(db)

			id, err := createAdmin(cmd.Context(), db, cfg, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (id %s)\n", in.Email, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&in.Password, "password", "", "admin password")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func createAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, in service.RegisterInput) (string, error) {
	auth := service.NewAuthService(repository.NewUserRepository(db), cfg)
	user, err := auth.CreateAdmin(ctx, in)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
