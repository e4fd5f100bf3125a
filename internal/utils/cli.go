package utils

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/0xRadioAc7iv/logcask/internal"
)

var ErrTooManyArguments = errors.New("too many arguments, quote values containing spaces")

// NewFlagSet registers the shared driver flags on a new flag set. The
// returned Config is filled in when the flag set is parsed; Backend is
// resolved by HandleCLIInputs.
func NewFlagSet(name, usage string, output io.Writer) (*flag.FlagSet, *internal.Config, *string) {
	cfg := internal.DefaultConfig()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		if usage != "" {
			fmt.Fprintln(output, strings.TrimSpace(usage))
			fmt.Fprintln(output)
		}
		fmt.Fprintln(output, "Flags:")
		fs.PrintDefaults()
	}

	backend := fs.String("backend", string(cfg.Backend), "Storage backend: disk or memory")
	fs.StringVar(&cfg.Path, "path", cfg.Path, "Log file used by the disk backend")
	fs.BoolVar(&cfg.HintFile, "hint", cfg.HintFile, "Persist the key directory on exit and reuse it on startup")
	fs.BoolVar(&cfg.Lock, "lock", cfg.Lock, "Refuse to open a log already in use by another process")
	fs.BoolVar(&cfg.TextOnly, "text", cfg.TextOnly, "Only accept UTF-8 keys and values")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	return fs, cfg, backend
}

// HandleCLIInputs parses the shared driver flags into a Config and returns
// the remaining positional arguments.
func HandleCLIInputs(fs *flag.FlagSet, cfg *internal.Config, backend *string, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Backend = internal.Backend(*backend)
	return fs.Args(), nil
}

// SplitStringIntoCommandAndArguments splits a command line using shell
// quoting rules, so `set "my key" 'a value'` yields set, my key, a value.
func SplitStringIntoCommandAndArguments(line string) (cmd, key, value string, err error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return "", "", "", err
	}

	return CommandFromWords(words)
}

// CommandFromWords maps already split words onto command, key and value.
func CommandFromWords(words []string) (cmd, key, value string, err error) {
	switch len(words) {
	case 0:
		return "", "", "", nil
	case 1:
		return words[0], "", "", nil
	case 2:
		return words[0], words[1], "", nil
	case 3:
		return words[0], words[1], words[2], nil
	default:
		return "", "", "", ErrTooManyArguments
	}
}
