package cli

import (
	"music_learning_backend/internal/app"
	"music_learning_backend/internal/config"

	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand to start the HTTP server.
func NewServeCmd(configDir *string) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*configDir, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides config)")
	return cmd
}

func runServer(configDir, port string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Run()
}
