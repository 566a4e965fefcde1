package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/skillexchange/internal/config"
	"github.com/mrlokans/skillexchange/internal/database"
	"github.com/mrlokans/skillexchange/internal/database/stats"
)

// StatsCommand prints the same counts /api/stats serves.
type StatsCommand struct {
	DatabasePath string
	Out          io.Writer
}

func NewStatsCommand() *StatsCommand {
	return &StatsCommand{Out: os.Stdout}
}

func (cmd *StatsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s stats [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print user, skill and exchange counts.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *StatsCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	counts, err := stats.NewRepository(db.DB).Counts()
	if err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Users:     %d\n", counts.UserCount)
	fmt.Fprintf(cmd.Out, "Skills:    %d\n", counts.SkillCount)
	fmt.Fprintf(cmd.Out, "Exchanges: %d\n", counts.ExchangeCount)
	return nil
}
