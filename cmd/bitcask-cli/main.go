package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/0xRadioAc7iv/logcask/internal/command"
	"github.com/0xRadioAc7iv/logcask/internal/logging"
	"github.com/0xRadioAc7iv/logcask/internal/utils"
	"github.com/0xRadioAc7iv/logcask/pkg/bitcask"
)

const usage = `
usage: bitcask-cli [flags]

Opens the store and reads commands interactively.
`

var completions = []string{"get", "set", "exists", "count", "list", "ping", "help", "exit"}

func main() {
	fs, cfg, backend := utils.NewFlagSet("bitcask-cli", usage, os.Stderr)

	if _, err := utils.HandleCLIInputs(fs, cfg, backend, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	logger := logging.NewConsole(cfg.LogLevel)
	cfg.Logger = logger

	store, err := bitcask.OpenConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Path).Msg("cannot open store")
	}

	var closeOnce sync.Once
	closeStore := func() {
		closeOnce.Do(func() {
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("closing store")
			}
		})
	}

	stop := utils.OnProcessInterruptOrKill(func() {
		closeStore()
		os.Exit(0)
	})
	defer stop()
	defer closeStore()

	handler := command.NewHandler(store, os.Stdout)

	if !isTerminal() {
		runScript(handler, os.Stdin)
		return
	}

	rl, err := createReadlineInstance()
	if err != nil {
		logger.Error().Err(err).Msg("cannot start readline")
		return
	}
	defer rl.Close()

	fmt.Printf("Opened %s store at %s\n", cfg.Backend, cfg.Path)
	fmt.Println("Type commands. 'help' for information or 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Println("(Use 'exit' or Ctrl+D to quit)")
			continue
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Println("input error:", err)
			return
		}

		if !execLine(handler, line) {
			return
		}
	}
}

// runScript executes piped commands one per line, without prompts.
func runScript(handler *command.Handler, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !execLine(handler, scanner.Text()) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Println("input error:", err)
	}
}

// execLine runs one input line and reports whether to keep reading.
func execLine(handler *command.Handler, line string) bool {
	line = strings.TrimSpace(line)

	if line == "" {
		return true
	}

	if line == "exit" {
		return false
	}

	cmd, key, value, err := utils.SplitStringIntoCommandAndArguments(line)
	if err != nil {
		fmt.Println("parse error:", err)
		return true
	}

	// the handler already printed a response for failed commands
	_ = handler.Handle(cmd, key, value)
	return true
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func createReadlineInstance() (*readline.Instance, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(completions))
	for _, c := range completions {
		items = append(items, readline.PcItem(c))
	}

	return readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyFilePath(),
		AutoComplete:      readline.NewPrefixCompleter(items...),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bitcask_history")
}
