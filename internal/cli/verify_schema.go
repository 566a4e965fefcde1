package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/skillexchange/internal/config"
	"github.com/mrlokans/skillexchange/internal/database"
)

// VerifySchemaCommand opens the database, applies migrations and reports
// whether the users table carries every column the app reads.
type VerifySchemaCommand struct {
	DatabasePath string
	Out          io.Writer
}

func NewVerifySchemaCommand() *VerifySchemaCommand {
	return &VerifySchemaCommand{Out: os.Stdout}
}

func (cmd *VerifySchemaCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("verify-schema", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s verify-schema [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create missing tables, seed skills and check the users table columns.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *VerifySchemaCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	report, err := db.VerifySchema()
	if err != nil {
		return fmt.Errorf("failed to inspect users table: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Database: %s\n", cmd.DatabasePath)
	fmt.Fprintf(cmd.Out, "Users columns: %s\n", strings.Join(report.Columns, ", "))
	if !report.OK() {
		fmt.Fprintf(cmd.Out, "Missing columns: %s\n", strings.Join(report.Missing, ", "))
		return fmt.Errorf("users table is missing %d column(s)", len(report.Missing))
	}

	fmt.Fprintln(cmd.Out, "Schema OK")
	return nil
}
