package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/cli"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range cli.Commands(os.Stdout, os.Stderr) {
		commander.Register(c, "simulations")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
