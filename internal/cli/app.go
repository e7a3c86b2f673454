// Package cli implements the dsv command line: parse, stat and load.
package cli

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/table/internal/config"
	"github.com/JonMunkholm/table/internal/logging"
	"github.com/JonMunkholm/table/pgcopy"
)

// ConnectFunc opens the database connection used by load. The returned
// func releases it.
type ConnectFunc func(ctx context.Context, db config.DatabaseConfig) (pgcopy.Copier, func(), error)

// App owns CLI wiring and execution configuration.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Config *config.Config

	// Connect defaults to a pgxpool built from Config.Database.
	Connect ConnectFunc
}

// NewApp constructs an App reading stdin and writing stdout.
func NewApp(cfg *config.Config) *App {
	return &App{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Config:  cfg,
		Connect: ConnectPool,
	}
}

// Execute runs the CLI with the provided args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// RootCommand exposes the root Cobra command for tests.
func (a *App) RootCommand() *cobra.Command {
	return newRootCmd(a)
}

// ConnectPool opens and pings a pgx pool configured from db.
func ConnectPool(ctx context.Context, db config.DatabaseConfig) (pgcopy.Copier, func(), error) {
	poolConfig, err := pgxpool.ParseConfig(db.URL)
	if err != nil {
		return nil, nil, err
	}

	poolConfig.MaxConns = int32(db.MaxConns)
	poolConfig.MinConns = int32(db.MinConns)
	poolConfig.MaxConnLifetime = db.MaxConnLifetime
	poolConfig.MaxConnIdleTime = db.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	logger := logging.FromContext(ctx)
	if u, err := url.Parse(db.URL); err == nil {
		logger.Debug("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		logger.Debug("connected to database")
	}

	return pool, pool.Close, nil
}
