package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/lib-tools/library-atlas/pkg/export"
	"github.com/lib-tools/library-atlas/pkg/runtime/terminal"
	"github.com/lib-tools/library-atlas/pkg/services/reporting"
	"github.com/lib-tools/library-atlas/pkg/store/postgres"
)

func main() {
	// .env is optional for the CLI.
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "Error: DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := postgres.NewDB(postgres.Settings{DSN: dsn})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	borrowingStore, err := postgres.NewBorrowingStore(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	bookStore, err := postgres.NewBookStore(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Generator: reporting.NewGenerator(borrowingStore, bookStore, export.NewEncoder()),
		Output:    os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
