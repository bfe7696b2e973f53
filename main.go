package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.lost.host/meutraa/radial/internal/config"
	"git.lost.host/meutraa/radial/internal/game"
	"git.lost.host/meutraa/radial/internal/input"
	"git.lost.host/meutraa/radial/internal/parser"
	"git.lost.host/meutraa/radial/internal/render"
	"git.lost.host/meutraa/radial/internal/theme"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); nil != err {
		logrus.Fatalln(err)
	}
}

func run() error {
	cfg, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}
	log, err := cfg.Logger()
	if nil != err {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := &Program{
		Config:   cfg,
		Log:      log,
		Parser:   &parser.DefaultParser{Log: log},
		Theme:    &theme.DefaultTheme{},
		Renderer: &render.DefaultRenderer{Out: os.Stdout, Fd: int(os.Stdout.Fd())},
	}

	var chart *game.Chart
	if cfg.Demo {
		chart = parser.Demo(cfg.Seed, parser.DefaultDemoOptions)
	} else {
		entries, err := p.Load(ctx)
		if nil != err {
			return err
		}
		if cfg.List {
			return render.Listing(os.Stdout, entries)
		}
		if cfg.Chart >= len(entries) {
			return errors.Errorf("chart %d requested, only %d available", cfg.Chart, len(entries))
		}
		chart = entries[cfg.Chart].Chart
	}
	if err := p.Select(chart); nil != err {
		return err
	}

	src, err := openInput(cfg, log)
	if nil != err {
		return err
	}
	defer func() {
		if err := src.Close(); nil != err {
			log.WithError(err).Warn("unable to close input")
		}
	}()

	stats, err := p.Play(ctx, src)
	if nil != err {
		return err
	}
	p.Verify(stats)
	return render.Summary(os.Stdout, chart, stats, p.Played())
}

// openInput prefers a keyboard device, which reports releases, over the
// terminal.
func openInput(cfg *config.Config, log logrus.FieldLogger) (input.Source, error) {
	if cfg.Device == "" {
		return input.OpenKeyboard(cfg.KeyControl)
	}
	codes, err := input.EvdevCodes(cfg.Keys, cfg.KeyControl)
	if nil != err {
		return nil, err
	}
	return input.OpenEvdev(cfg.Device, codes, log)
}
