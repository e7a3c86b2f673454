// Package pgcopy loads a parsed table into PostgreSQL with COPY.
//
// The table's header row names the destination columns and every other
// row becomes one copied row. Cells map to column values as follows:
//
//   - Nil is NULL
//   - Num is a pgtype.Numeric (NaN and ±Infinity included)
//   - Obj is a pgtype.Text holding the cell text unchanged
package pgcopy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/table/internal/logging"
	"github.com/JonMunkholm/table/table"
)

// Copier is the part of a pgx connection CopyTable needs.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Copier interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

var (
	// ErrNoHeader is returned when the table has no header row to take
	// column names from.
	ErrNoHeader = errors.New("table has no header row")
	// ErrColumnName is returned for a blank or repeated column name.
	ErrColumnName = errors.New("invalid column name")
)

// CopyTable copies every data row of t into the table named by ident and
// returns the number of rows copied.
func CopyTable(ctx context.Context, c Copier, ident pgx.Identifier, t *table.Table[string]) (int64, error) {
	columns, err := Columns(t)
	if err != nil {
		return 0, err
	}

	logger := logging.WithFields(ctx,
		"table", ident.Sanitize(),
		"columns", len(columns),
	)

	if t.IsDataEmpty() {
		logger.Info("nothing to copy")
		return 0, nil
	}

	logger.Debug("copy started", "rows", t.RowsLen()-1)
	n, err := c.CopyFrom(ctx, ident, columns, Source(t))
	if err != nil {
		return n, fmt.Errorf("copy into %s: %w", ident.Sanitize(), err)
	}

	logger.Info("copy completed", "rows", n)
	return n, nil
}

// Columns returns the column names held by t's header row.
func Columns(t *table.Table[string]) ([]string, error) {
	if !t.Header() || t.IsEmpty() {
		return nil, ErrNoHeader
	}

	header, _ := t.Row(0)
	names := make([]string, 0, t.ColsLen())
	seen := make(map[string]int, t.ColsLen())
	for c := range header {
		i := len(names)
		if c.IsNil() {
			return nil, fmt.Errorf("%w: column %d is blank", ErrColumnName, i+1)
		}
		name := c.String()
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q names columns %d and %d", ErrColumnName, name, prev+1, i+1)
		}
		seen[name] = i
		names = append(names, name)
	}
	return names, nil
}

// Source returns a pgx.CopyFromSource over t's data rows. The header row,
// when flagged, is skipped.
func Source(t *table.Table[string]) pgx.CopyFromSource {
	first := 0
	if t.Header() {
		first = 1
	}
	return &rowSource{t: t, row: first - 1}
}

type rowSource struct {
	t   *table.Table[string]
	row int
}

func (s *rowSource) Next() bool {
	s.row++
	return s.row < s.t.RowsLen()
}

func (s *rowSource) Values() ([]any, error) {
	row, ok := s.t.Row(s.row)
	if !ok {
		return nil, fmt.Errorf("row %d out of range", s.row)
	}
	values := make([]any, 0, s.t.ColsLen())
	for c := range row {
		values = append(values, Value(c))
	}
	return values, nil
}

func (s *rowSource) Err() error {
	return nil
}

// Value converts one cell into the value handed to COPY.
func Value(c table.Cell[string]) any {
	if n, ok := c.Num(); ok {
		return Numeric(n)
	}
	if s, ok := c.Obj(); ok {
		return pgtype.Text{String: s, Valid: true}
	}
	return nil
}

// Numeric converts a Number to pgtype.Numeric without loss: integers are
// carried as big integers and floats through their shortest decimal form.
func Numeric(n table.Number) pgtype.Numeric {
	if i, ok := n.Int64(); ok {
		return pgtype.Numeric{Int: big.NewInt(i), Valid: true}
	}
	if u, ok := n.Uint64(); ok {
		return pgtype.Numeric{Int: new(big.Int).SetUint64(u), Valid: true}
	}

	f := n.Float64()
	switch {
	case math.IsNaN(f):
		return pgtype.Numeric{NaN: true, Valid: true}
	case math.IsInf(f, 1):
		return pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true}
	case math.IsInf(f, -1):
		return pgtype.Numeric{InfinityModifier: pgtype.NegativeInfinity, Valid: true}
	}

	var num pgtype.Numeric
	if err := num.Scan(strconv.FormatFloat(f, 'f', -1, 64)); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return num
}
