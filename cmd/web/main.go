package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lib-tools/library-atlas/pkg/export"
	"github.com/lib-tools/library-atlas/pkg/server"
	"github.com/lib-tools/library-atlas/pkg/services/accounts"
	"github.com/lib-tools/library-atlas/pkg/services/auth"
	"github.com/lib-tools/library-atlas/pkg/services/catalog"
	"github.com/lib-tools/library-atlas/pkg/services/circulation"
	"github.com/lib-tools/library-atlas/pkg/services/reporting"
	"github.com/lib-tools/library-atlas/pkg/store/postgres"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Start the library management web server",
		RunE:  runServer,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.AutomaticEnv()
	return v
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	v := loadConfig()
	dsn := v.GetString("database_url")
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	secret := v.GetString("jwt_secret")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	db, err := postgres.NewDB(postgres.Settings{DSN: dsn})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	borrowingStore, err := postgres.NewBorrowingStore(db)
	if err != nil {
		return fmt.Errorf("failed to create borrowing store: %w", err)
	}
	bookStore, err := postgres.NewBookStore(db)
	if err != nil {
		return fmt.Errorf("failed to create book store: %w", err)
	}
	borrowerStore, err := postgres.NewBorrowerStore(db)
	if err != nil {
		return fmt.Errorf("failed to create borrower store: %w", err)
	}

	authService, err := auth.NewService(borrowerStore, secret)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(v.GetString("server_host"), v.GetString("server_port")),
		Dependencies: server.Dependencies{
			Auth:        authService,
			Catalog:     catalog.NewService(bookStore),
			Circulation: circulation.NewService(borrowingStore, bookStore),
			Accounts:    accounts.NewService(borrowerStore),
			Reports:     reporting.NewGenerator(borrowingStore, bookStore, export.NewEncoder()),
		},
	})

	return webAPI.Start()
}
