package main

import (
	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"corpus2vec/internal/service"
)

func trainCommand() *cli.Command {
	return &cli.Command{
		Name:      "train",
		Usage:     "train one model per corpus and write <output_dir>/<name>.bin",
		ArgsUsage: "[corpus ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "progress", Usage: "show a progress bar over the corpora"},
			&cli.BoolFlag{Name: "skip-failed", Usage: "keep going after a corpus fails"},
		},
		Action: runTrain,
	}
}

func runTrain(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.NArg() > 0 {
		cfg.Corpora = c.Args().Slice()
	}
	if c.Bool("skip-failed") {
		cfg.SkipFailed = true
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	tk, err := service.NewToolkit(cfg)
	if err != nil {
		return err
	}

	var opts []service.Option
	opts = append(opts, service.WithLogger(logger))
	if c.Bool("progress") {
		names := cfg.Corpora
		uiprogress.Start()
		defer uiprogress.Stop()
		bar := uiprogress.AddBar(len(names))
		bar.AppendCompleted()
		bar.PrependElapsed()
		bar.AppendFunc(func(b *uiprogress.Bar) string {
			if b.Current() == 0 {
				return ""
			}
			return names[b.Current()-1]
		})
		epochs := uiprogress.AddBar(cfg.Trainer.Epochs)
		epochs.AppendCompleted()
		epochs.PrependFunc(func(*uiprogress.Bar) string { return "epoch" })
		opts = append(opts,
			service.WithCorpusDone(func(string, error) { bar.Incr() }),
			service.WithEpochDone(func(epoch, _ int) { _ = epochs.Set(epoch) }),
		)
	}

	p, err := service.NewPipeline(cfg, tk, opts...)
	if err != nil {
		return err
	}
	results, err := p.Run(c.Context, cfg.Corpora)
	for _, r := range results {
		logger.WithField("corpus", r.Corpus).
			WithField("words", r.Words).
			Infof("wrote %s", r.ModelPath)
	}
	return err
}
