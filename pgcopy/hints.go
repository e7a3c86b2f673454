package pgcopy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Hint explains a failed copy in plain words.
type Hint struct {
	Message string // what went wrong
	Action  string // what to try
	Code    string // stable reference for support
}

func (h Hint) String() string {
	return fmt.Sprintf("%s (Code: %s). %s", h.Message, h.Code, h.Action)
}

// hintsByState is keyed by SQLSTATE.
var hintsByState = map[string]Hint{
	"23505": {"A row duplicates an existing key", "Remove duplicate rows or clear the table first", "DB001"},
	"23503": {"A row references a record that does not exist", "Load the referenced table first", "DB003"},
	"40P01": {"The database was busy with conflicting operations", "Try again", "DB007"},
	"42P01": {"The destination table does not exist", "Create the table or check --table", "DB010"},
	"42703": {"A header names a column the table does not have", "Rename the header cell or add the column", "DB011"},
	"22P02": {"A cell does not fit its column type", "Check that numeric columns hold only numbers", "DB012"},
	"23502": {"An empty cell was loaded into a NOT NULL column", "Fill the empty cells or relax the constraint", "DB013"},
	"22003": {"A number is out of range for its column", "Widen the column type", "DB014"},
	"22001": {"A text cell is longer than its column allows", "Widen the column type", "DB015"},
}

// hintPatterns match errors that carry no SQLSTATE, in order.
var hintPatterns = []struct {
	pattern string
	hint    Hint
}{
	{"connection refused", Hint{"Unable to connect to the database", "Check DATABASE_URL and that the server is running", "DB004"}},
	{"connection reset", Hint{"The database connection was interrupted", "Try again", "DB005"}},
	{"timeout", Hint{"The copy timed out", "Raise DB_COPY_TIMEOUT or split the input", "DB006"}},
}

var timeoutHint = hintPatterns[2].hint

// Explain maps err to a Hint. It reports false for errors it does not
// recognise.
func Explain(err error) (Hint, bool) {
	if err == nil {
		return Hint{}, false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		h, ok := hintsByState[pgErr.Code]
		return h, ok
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutHint, true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range hintPatterns {
		if strings.Contains(msg, p.pattern) {
			return p.hint, true
		}
	}
	return Hint{}, false
}
