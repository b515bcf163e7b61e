package cli

import (
	"github.com/okian/cosmicboard/internal/adapters/render"
	service "github.com/okian/cosmicboard/internal/app"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/urfave/cli/v2"
)

var filterFlags = []cli.Flag{ //nolint:gochecknoglobals // shared flag set
	&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: model.ModeAll, Usage: "mode filter: all, normal, infinite"},
	&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "case-insensitive player name search"},
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "load the board once and print the filtered table",
		Flags: filterFlags,
		Action: func(c *cli.Context) error {
			svc := service.New(service.WithLoader(NewSource(configFrom(c))))
			if err := svc.Start(c.Context); err != nil {
				return err
			}
			defer svc.Stop()

			snap := svc.Query(c.Context, c.String("mode"), c.String("search"))
			return render.WriteTable(c.App.Writer, snap)
		},
	}
}
