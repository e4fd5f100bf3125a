package main

import (
	"errors"
	"flag"
	"os"

	"github.com/0xRadioAc7iv/logcask/internal/command"
	"github.com/0xRadioAc7iv/logcask/internal/logging"
	"github.com/0xRadioAc7iv/logcask/internal/utils"
	"github.com/0xRadioAc7iv/logcask/pkg/bitcask"
)

const usage = `
usage: bitcask [flags] <command> [key] [value]

Runs a single command against the store and exits.
Run "bitcask help" for the list of commands.
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs, cfg, backend := utils.NewFlagSet("bitcask", usage, os.Stderr)

	rest, err := utils.HandleCLIInputs(fs, cfg, backend, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	cmd, key, value, err := utils.CommandFromWords(rest)
	if err != nil || cmd == "" {
		fs.Usage()
		return 2
	}

	logger := logging.NewConsole(cfg.LogLevel)
	cfg.Logger = logger

	store, err := bitcask.OpenConfig(cfg)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Path).Msg("cannot open store")
		return 1
	}

	status := 0
	if err := command.NewHandler(store, os.Stdout).Handle(cmd, key, value); err != nil {
		logger.Error().Err(err).Str("command", cmd).Msg("command failed")
		status = 1
	}

	if err := store.Close(); err != nil {
		logger.Error().Err(err).Msg("closing store")
		status = 1
	}

	return status
}
