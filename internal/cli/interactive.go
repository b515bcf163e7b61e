package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/okian/cosmicboard/internal/adapters/render"
	service "github.com/okian/cosmicboard/internal/app"
	"github.com/okian/cosmicboard/internal/domain/types"
	"github.com/urfave/cli/v2"
)

const interactiveHelp = `commands:
  mode <all|normal|infinite|...>   change the mode filter
  search <term>                    filter by player name
  clear                            drop the search term
  help                             show this text
  quit                             leave
`

func interactiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "interactive",
		Usage: "load the board once, then filter it with line commands on stdin",
		Action: func(c *cli.Context) error {
			out := c.App.Writer
			ctrl := service.NewController(NewSource(configFrom(c)), func(_ context.Context, snap types.Snapshot) {
				_ = render.WriteTable(out, snap)
				_, _ = fmt.Fprintln(out)
			})
			ctrl.Init(c.Context)
			return RunSession(c.Context, ctrl, c.App.Reader, out)
		},
	}
}

// RunSession applies line commands from in to ctrl until quit or EOF.
func RunSession(ctx context.Context, ctrl *service.Controller, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(cmd) {
		case "":
		case "mode":
			if arg == "" {
				_, _ = fmt.Fprintln(out, "usage: mode <name>")
				continue
			}
			ctrl.SetMode(ctx, arg)
		case "search":
			ctrl.SetSearchTerm(ctx, arg)
		case "clear":
			ctrl.ClearSearch(ctx)
		case "help", "?":
			_, _ = io.WriteString(out, interactiveHelp)
		case "quit", "exit", "q":
			return nil
		default:
			_, _ = fmt.Fprintf(out, "unknown command %q\n%s", cmd, interactiveHelp)
		}
	}
	return scanner.Err()
}
