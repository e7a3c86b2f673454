package render

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/table/table"
)

func sample() *table.Table[string] {
	return table.FromRows([][]table.Cell[string]{
		{table.Obj("name"), table.Obj("qty"), table.Nil[string]()},
		{table.Obj("apple"), table.Num[string](table.Int(3)), table.Num[string](table.Float(1.5))},
		{table.Obj("kiwi, gold"), table.Nil[string](), table.Num[string](table.Float(math.Inf(1)))},
	})
}

func render(t *testing.T, tb *table.Table[string], f Format) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewPrinter(&buf, f).Print(tb); err != nil {
		t.Fatalf("Print(%s) error = %v", f, err)
	}
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{" CSV ", FormatCSV, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrint_Text(t *testing.T) {
	got := render(t, sample(), FormatText)
	want := strings.Join([]string{
		"name         qty   -",
		"----------   ---   ----",
		"apple        3     1.5",
		"kiwi, gold   -     +Inf",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestPrint_TextNoHeader(t *testing.T) {
	tb := table.FromRows([][]table.Cell[string]{
		{table.Obj("a\nb"), table.Obj("ç")},
	})
	tb.SetHeader(false)

	got := render(t, tb, FormatText)
	if want := "a\\nb   ç\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrint_CSV(t *testing.T) {
	got := render(t, sample(), FormatCSV)
	want := "name,qty,\napple,3,1.5\n\"kiwi, gold\",,+Inf\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrint_JSON(t *testing.T) {
	got := render(t, sample(), FormatJSON)

	var doc struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got)
	}

	if diff := cmp.Diff([]string{"name", "qty", ""}, doc.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	wantRows := [][]any{
		{"apple", 3.0, 1.5},
		{"kiwi, gold", nil, "+Inf"},
	}
	if diff := cmp.Diff(wantRows, doc.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestPrint_JSONNoHeader(t *testing.T) {
	tb := sample()
	tb.SetHeader(false)
	got := render(t, tb, FormatJSON)
	if strings.Contains(got, "columns") {
		t.Errorf("headerless output has columns:\n%s", got)
	}
	if strings.Count(got, "[\n      ") != 3 {
		t.Errorf("want 3 rows:\n%s", got)
	}
}

func TestPrint_JSONEmpty(t *testing.T) {
	got := render(t, table.New[string](), FormatJSON)
	if want := "{\n  \"rows\": []\n}\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrint_YAML(t *testing.T) {
	tb := table.FromRows([][]table.Cell[string]{
		{table.Obj("id"), table.Obj("big")},
		{table.Num[string](table.Int(-1)), table.Num[string](table.Uint(math.MaxUint64))},
	})
	got := render(t, tb, FormatYAML)

	var doc struct {
		Columns []string `yaml:"columns"`
		Rows    [][]any  `yaml:"rows"`
	}
	if err := yaml.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, got)
	}
	if diff := cmp.Diff([]string{"id", "big"}, doc.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]any{{-1, uint64(math.MaxUint64)}}, doc.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestPrint_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, "xml").Print(sample()); err == nil {
		t.Error("Print() expected error for unsupported format")
	}
}
