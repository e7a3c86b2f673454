package cli

import (
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/table/internal/render"
)

func newParseCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse input and print the table",
		Long: `Parse a file (or stdin when no file or "-" is given) and print the
resulting table as aligned text, CSV, JSON or YAML.`,
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
			return render.NewPrinter(app.Stdout, f).Print(t)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text|csv|json|yaml")
	return cmd
}
