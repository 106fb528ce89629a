package main

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"corpus2vec/internal/service"
	"corpus2vec/internal/tui"
)

var modelFlag = &cli.StringFlag{
	Name:     "model",
	Aliases:  []string{"m"},
	Usage:    "word2vec binary model to query",
	Required: true,
}

var topFlag = &cli.IntFlag{Name: "top", Aliases: []string{"n"}, Value: 10, Usage: "number of neighbours"}

func similarCommand() *cli.Command {
	return &cli.Command{
		Name:      "similar",
		Usage:     "print the nearest words to w0, w0 - w1 or w0 - w1 + w2",
		ArgsUsage: "word [word [word]]",
		Flags:     []cli.Flag{modelFlag, topFlag},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("similar: at least one word is required")
			}
			q, err := service.LoadQueryService(c.String("model"))
			if err != nil {
				return err
			}
			res, err := q.Similar(c.Args().Slice(), c.Int("top"))
			if err != nil {
				return err
			}
			w := c.App.Writer
			for _, r := range res {
				fmt.Fprintf(w, "%-20s %.4f\n", r.Word, r.Score)
			}
			return nil
		},
	}
}

func exploreCommand() *cli.Command {
	return &cli.Command{
		Name:  "explore",
		Usage: "interactive nearest-word and analogy explorer",
		Flags: []cli.Flag{modelFlag, topFlag},
		Action: func(c *cli.Context) error {
			path := c.String("model")
			q, err := service.LoadQueryService(path)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			m := tui.New(q, name, c.Int("top"))
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(c.Context)).Run()
			return err
		},
	}
}
