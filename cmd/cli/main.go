package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/minaorangina/skyjo/cli"
	"github.com/minaorangina/skyjo/config"
	"github.com/minaorangina/skyjo/engine"
	"github.com/minaorangina/skyjo/store"
)

func main() {
	cfg, err := config.Load(config.DotEnv())
	if err != nil {
		color.Red("could not load config: %v", err)
		os.Exit(1)
	}
	log := cfg.Logger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	snapshots, closeStore, err := cfg.OpenStore(ctx)
	if err != nil {
		log.WithError(err).Fatal("could not open store")
	}
	defer closeStore()

	in := bufio.NewScanner(os.Stdin)

	// a saved game carries its own names, so only ask when there is nothing to resume
	names := []string{}
	saved, found, err := snapshots.Load(ctx, store.DefaultKey)
	if err != nil {
		log.WithError(err).Warn("ignoring saved game")
	}
	if found {
		for _, p := range saved.Players {
			names = append(names, p.Name)
		}
	} else {
		names, err = cli.AskNames(in, color.Output)
		if err != nil {
			log.WithError(err).Fatal("could not start game")
		}
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		Names:    names,
		Rules:    cfg.Rules(),
		Seed:     cfg.Seed,
		Store:    snapshots,
		StoreKey: store.DefaultKey,
		Log:      log,
	})
	if err != nil {
		log.WithError(err).Fatal("could not start game")
	}

	if found {
		if _, err := ge.Resume(ctx); err != nil {
			log.WithError(err).Fatal("could not resume game")
		}
	} else if err := snapshots.Save(ctx, store.DefaultKey, ge.Game().State); err != nil {
		log.WithError(err).Warn("could not save new game")
	}

	if err := cli.Play(ctx, ge, in, color.Output); err != nil {
		log.WithError(err).Fatal("game stopped")
	}
}
