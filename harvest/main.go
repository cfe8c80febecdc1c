package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/danhodge/harvest/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
)

func main() {
	// A missing .env file is fine; flags and the environment still apply.
	godotenv.Load()

	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"balance":    {},
			"price":      {},
			"allocation": {},
			"target":     {},
			"report":     {},
			"log":        {},
			"fmt":        {},
			"topic":      {},
			"assist":     {},
		},
	}
	completion.Complete("harvest")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
