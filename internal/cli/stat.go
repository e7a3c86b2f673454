package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/table/internal/logging"
	"github.com/JonMunkholm/table/internal/render"
	"github.com/JonMunkholm/table/table"
)

// kindCounts holds the number of cells of each Kind, indexed by Kind.
type kindCounts [3]int64

func newStatCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stat [file]",
		Short: "Count empty, numeric and text cells per column",
		Long: `Parse a file (or stdin) and print, for every column, how many data
cells are empty (nil), numeric (num) or text (obj), followed by a total row.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			t, err := app.readTable(cmd, inputArg(args))
			if err != nil {
				return err
			}

			opts := table.ParOptions{
				Workers:   app.Config.Map.Workers,
				ChunkRows: app.Config.Map.ChunkRows,
			}
			counts := countKinds(t, opts)

			logging.FromContext(cmd.Context()).Info("table stats",
				"rows", t.RowsLen(),
				"cols", t.ColsLen(),
				"data_empty", t.IsDataEmpty(),
			)
			return render.NewPrinter(app.Stdout, f).Print(statTable(t, counts))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text|csv|json|yaml")
	return cmd
}

// countKinds tallies cell kinds per column, skipping a flagged header row.
// Kinds are resolved by a parallel map and folded column by column.
func countKinds(t *table.Table[string], opts table.ParOptions) []kindCounts {
	kinds := table.ParMap(t, func(c table.Cell[string]) table.Cell[table.Kind] {
		return table.Obj(c.Kind())
	}, opts)

	counts := make([]kindCounts, kinds.ColsLen())
	j := 0
	for col := range kinds.Cols() {
		i := 0
		for c := range col {
			if i > 0 || !kinds.Header() {
				k, _ := c.Obj()
				counts[j][k]++
			}
			i++
		}
		j++
	}
	return counts
}

// statTable lays counts out as a table with one row per column and a
// trailing total.
func statTable(t *table.Table[string], counts []kindCounts) *table.Table[string] {
	rows := make([][]table.Cell[string], 0, len(counts)+2)
	rows = append(rows, []table.Cell[string]{
		table.Obj("column"), table.Obj("nil"), table.Obj("num"), table.Obj("obj"),
	})

	var total kindCounts
	for j, kc := range counts {
		rows = append(rows, countRow(columnName(t, j), kc))
		for k, n := range kc {
			total[k] += n
		}
	}
	rows = append(rows, countRow("total", total))

	return table.FromRows(rows)
}

func countRow(name string, kc kindCounts) []table.Cell[string] {
	return []table.Cell[string]{
		table.Obj(name),
		table.Num[string](table.Int(kc[table.KindNil])),
		table.Num[string](table.Int(kc[table.KindNum])),
		table.Num[string](table.Int(kc[table.KindObj])),
	}
}

// columnName is the header text of column j, or its 1-based position when
// there is no usable header.
func columnName(t *table.Table[string], j int) string {
	if t.Header() {
		if c, ok := t.At(0, j); ok && !c.IsNil() {
			return c.String()
		}
	}
	return "#" + strconv.Itoa(j+1)
}
