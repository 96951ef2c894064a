// Package cmd implements the CLI application to play the market-replay game.
package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mitchypi/newgame"
	"github.com/mitchypi/newgame/kv"
)

// Register the subcommands. A main package calls Register, then Execute on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&statusCmd{}, "game")
	c.Register(&nextCmd{}, "game")
	c.Register(&jumpCmd{}, "game")
	c.Register(&skipCmd{}, "game")

	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&txCmd{}, "reports")
	c.Register(&instrumentsCmd{}, "reports")
}

// As a CLI application it has a very short-lived lifecycle, so it is ok to
// use global variables for the shared flags.

var dataPath = flag.String("data-path", "data", "Path to the market data folder (stocks/, crypto/)")
var storePath = flag.String("store-path", ".replay", "Path to the game state folder")
var redisAddr = flag.String("redis", "", "Redis address for game state (overrides -store-path)")
var verbose = flag.Bool("v", false, "Enable debug logging")

// openSession loads the game session from the configured store.
func openSession(ctx context.Context) (*newgame.Session, error) {
	log := newLogger()

	source := newgame.NewDirSource(*dataPath)
	catalog, err := source.Catalog()
	if err != nil {
		return nil, fmt.Errorf("loading instrument catalog: %w", err)
	}

	var store kv.Store
	if *redisAddr != "" {
		store = kv.NewRedis(redis.NewClient(&redis.Options{Addr: *redisAddr}), "replay")
	} else {
		store, err = kv.NewDir(*storePath)
		if err != nil {
			return nil, err
		}
	}

	return newgame.LoadSession(ctx, newgame.DefaultConfig(), catalog, source, store, log)
}

func newLogger() *logrus.Entry {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(log)
}
