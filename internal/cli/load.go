package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/table/internal/logging"
	"github.com/JonMunkholm/table/pgcopy"
)

func newLoadCmd(app *App) *cobra.Command {
	var tableName string

	cmd := &cobra.Command{
		Use:   "load --table name [file]",
		Short: "Copy the parsed rows into a PostgreSQL table",
		Long: `Parse a file (or stdin) and COPY its data rows into an existing
PostgreSQL table. The header row names the destination columns. Empty
cells are loaded as NULL. The connection comes from DATABASE_URL.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.RequireDatabase(); err != nil {
				return err
			}
			ident, err := identifier(tableName)
			if err != nil {
				return err
			}

			t, err := app.readTable(cmd, inputArg(args))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), app.Config.Database.CopyTimeout)
			defer cancel()

			conn, release, err := app.Connect(ctx, app.Config.Database)
			if err != nil {
				return withHint(ctx, fmt.Errorf("connect to database: %w", err))
			}
			defer release()

			n, err := pgcopy.CopyTable(ctx, conn, ident, t)
			if err != nil {
				return withHint(ctx, err)
			}

			_, err = fmt.Fprintf(app.Stdout, "copied %d rows into %s\n", n, ident.Sanitize())
			return err
		},
	}

	cmd.Flags().StringVarP(&tableName, "table", "t", "", "destination table, optionally schema-qualified (schema.table)")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

// withHint logs a plain-words explanation of err when one is known.
func withHint(ctx context.Context, err error) error {
	if h, ok := pgcopy.Explain(err); ok {
		logging.FromContext(ctx).Warn(h.Message, "action", h.Action, "code", h.Code)
	}
	return err
}

// identifier splits a possibly schema-qualified table name.
func identifier(name string) (pgx.Identifier, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid --table %q: want table or schema.table", name)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, errors.New("invalid --table: empty name")
		}
	}
	return pgx.Identifier(parts), nil
}
