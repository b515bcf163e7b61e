package cli

import (
	"fmt"
	"os"

	"github.com/okian/cosmicboard/internal/adapters/render"
	service "github.com/okian/cosmicboard/internal/app"
	"github.com/urfave/cli/v2"
)

const exportFileMode = 0o644

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the filtered board to an XLSX workbook",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "destination .xlsx file"},
		}, filterFlags...),
		Action: func(c *cli.Context) error {
			svc := service.New(service.WithLoader(NewSource(configFrom(c))))
			if err := svc.Start(c.Context); err != nil {
				return err
			}
			defer svc.Stop()

			snap := svc.Query(c.Context, c.String("mode"), c.String("search"))
			data, err := render.WorkbookXLSX(snap)
			if err != nil {
				return err
			}
			if err := os.WriteFile(c.String("out"), data, exportFileMode); err != nil {
				return fmt.Errorf("write %s: %w", c.String("out"), err)
			}
			_, _ = fmt.Fprintf(c.App.Writer, "exported %d scores to %s\n", len(snap.View), c.String("out"))
			return nil
		},
	}
}
