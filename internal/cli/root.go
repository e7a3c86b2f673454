package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/table/dsv"
	"github.com/JonMunkholm/table/internal/config"
	"github.com/JonMunkholm/table/internal/input"
	"github.com/JonMunkholm/table/internal/logging"
	"github.com/JonMunkholm/table/table"
)

// parseFlags are the persistent flags shared by every subcommand. Unset
// flags fall back to the Parse section of the config.
type parseFlags struct {
	delimiter string
	noHeader  bool
	owned     bool
}

func newRootCmd(app *App) *cobra.Command {
	var flags parseFlags

	rootCmd := &cobra.Command{
		Use:   "dsv",
		Short: "Parse delimiter-separated text into tables",
		Long: `dsv reads delimiter-separated text (CSV, TSV, pipe-separated, ...)
into a rectangular table of empty, numeric and text cells, then prints it,
summarises it or copies it into PostgreSQL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.apply(cmd, &app.Config.Parse)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.delimiter, "delimiter", "d", "", "cell delimiter, one ASCII character or \"tab\" (default from DSV_DELIMITER)")
	rootCmd.PersistentFlags().BoolVar(&flags.noHeader, "no-header", false, "treat the first row as data")
	rootCmd.PersistentFlags().BoolVar(&flags.owned, "owned", false, "copy cell text out of the input buffer")

	rootCmd.AddCommand(
		newParseCmd(app),
		newStatCmd(app),
		newLoadCmd(app),
	)
	return rootCmd
}

// apply folds explicitly set flags into cfg and revalidates the delimiter.
func (f *parseFlags) apply(cmd *cobra.Command, cfg *config.ParseConfig) error {
	pf := cmd.Flags()
	if pf.Changed("delimiter") {
		d, err := config.ParseDelimiter(f.delimiter)
		if err != nil {
			return fmt.Errorf("invalid --delimiter: %w", err)
		}
		cfg.Delimiter = d
	}
	if pf.Changed("no-header") {
		cfg.Header = !f.noHeader
	}
	if pf.Changed("owned") {
		cfg.Owned = f.owned
	}
	return nil
}

// readTable reads the named input (stdin for "" or "-") and parses it with
// the configured options.
func (a *App) readTable(cmd *cobra.Command, path string) (*table.Table[string], error) {
	ctx := cmd.Context()
	cfg := a.Config

	var (
		text  string
		stats input.Stats
		err   error
	)
	if path == "" || path == input.Stdin {
		path = input.Stdin
		text, stats, err = input.ReadAll(a.Stdin, cfg.Input.MaxSize)
	} else {
		text, stats, err = input.ReadPath(path, cfg.Input.MaxSize)
	}
	if err != nil {
		return nil, err
	}

	t := dsv.Parse(cfg.Parse.Delimiter, text)
	t.SetHeader(cfg.Parse.Header)
	if cfg.Parse.Owned {
		t = dsv.Owned(t)
	}

	logging.WithFields(ctx, "source", path).Debug("parsed input",
		"bytes", stats.Bytes,
		"rows", t.RowsLen(),
		"cols", t.ColsLen(),
	)
	return t, nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
