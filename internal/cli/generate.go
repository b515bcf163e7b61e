package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/tidwall/sjson"
	"github.com/urfave/cli/v2"
)

// Generation ranges for synthetic scores.
const (
	genMinScore    = 100
	genMaxScore    = 20000
	genMaxWave     = 30
	genDateLayout  = "2006-01-02 15:04"
	genFileMode    = 0o644
	genDefaultSize = 25
)

var genModes = []string{model.ModeNormal, model.ModeInfinite} //nolint:gochecknoglobals // fixed mode set

// Generate builds a payload with n synthetic entries, sorted by score
// descending, stamped with now. The same seed yields the same scores.
func Generate(n int, seed uint64, now time.Time) ([]byte, error) {
	faker := gofakeit.New(seed)
	start := now.AddDate(0, -1, 0)

	entries := make(model.ScoreList, n)
	for i := range entries {
		wave := faker.Number(1, genMaxWave)
		entries[i] = model.ScoreEntry{
			Name:  faker.Gamertag(),
			Score: faker.Number(genMinScore, genMaxScore),
			Wave:  wave,
			Mode:  faker.RandomString(genModes),
			Date:  faker.DateRange(start, now).UTC().Format(genDateLayout),
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })

	doc := []byte(`{"scores":[]}`)
	var err error
	for _, e := range entries {
		if doc, err = sjson.SetBytes(doc, "scores.-1", e); err != nil {
			return nil, fmt.Errorf("append score: %w", err)
		}
	}
	if doc, err = sjson.SetBytes(doc, "last_updated", now.UTC().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("set last_updated: %w", err)
	}
	return doc, nil
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "write a synthetic leaderboard payload for local testing",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "cosmic_defender_leaderboard.json", Usage: "destination file"},
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: genDefaultSize, Usage: "number of scores"},
			&cli.Uint64Flag{Name: "seed", Usage: "random seed (0 picks one from the clock)"},
		},
		Action: func(c *cli.Context) error {
			n := c.Int("count")
			if n < 0 {
				return cli.Exit("count must not be negative", 2)
			}
			seed := c.Uint64("seed")
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			doc, err := Generate(n, seed, time.Now())
			if err != nil {
				return err
			}
			if err := os.WriteFile(c.String("out"), doc, genFileMode); err != nil {
				return fmt.Errorf("write %s: %w", c.String("out"), err)
			}
			_, _ = fmt.Fprintf(c.App.Writer, "wrote %d scores to %s (seed %d)\n", n, c.String("out"), seed)
			return nil
		},
	}
}
