package pgcopy

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestExplain(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantOK   bool
	}{
		{"nil", nil, "", false},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, "DB010", true},
		{"wrapped undefined column", fmt.Errorf("copy into x: %w", &pgconn.PgError{Code: "42703"}), "DB011", true},
		{"bad numeric text", &pgconn.PgError{Code: "22P02"}, "DB012", true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, "DB001", true},
		{"unknown state", &pgconn.PgError{Code: "XX000"}, "", false},
		{"deadline", fmt.Errorf("copy: %w", context.DeadlineExceeded), "DB006", true},
		{"refused", errors.New("dial tcp 127.0.0.1:5432: Connection refused"), "DB004", true},
		{"reset", errors.New("read: connection reset by peer"), "DB005", true},
		{"unrelated", errors.New("something else"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Explain(tt.err)
			if ok != tt.wantOK || got.Code != tt.wantCode {
				t.Errorf("Explain() = %+v, %v, want code %q, %v", got, ok, tt.wantCode, tt.wantOK)
			}
		})
	}
}

func TestHint_String(t *testing.T) {
	h := Hint{Message: "Broken", Action: "Fix it", Code: "DB999"}
	if got, want := h.String(), "Broken (Code: DB999). Fix it"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
