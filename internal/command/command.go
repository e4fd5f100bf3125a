// Package command executes the text commands shared by the bitcask drivers.
package command

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/0xRadioAc7iv/logcask/pkg/bitcask"
)

var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrMissingKey     = errors.New("missing key")
	ErrUnsupported    = errors.New("backend cannot enumerate keys")
)

const helpString = `
Available Commands:

PING
  Check that the store is open.
  Response: PONG!

SET <key> <value>
  Store a value for the given key.
  Overwrites the value if the key already exists.
  Response: ok

GET <key>
  Retrieve the value associated with the key.
  Response: value | nil

EXISTS <key>
  Check if a key exists.
  Response: true | false

COUNT
  Return the total number of keys stored.
  Response: integer

LIST
  List all stored keys.
  Response: list of keys | nil

HELP
  Show this help message.

EXIT (cli only)
  Close the store and quit.
`

// Handler writes the response of every command it runs to out.
type Handler struct {
	store bitcask.Store
	out   io.Writer
}

func NewHandler(store bitcask.Store, out io.Writer) *Handler {
	return &Handler{store: store, out: out}
}

// Handle runs a single command. Store failures are reported both on out and
// as the returned error.
func (h *Handler) Handle(cmd, key, value string) error {
	switch strings.ToLower(cmd) {
	case "ping":
		return h.reply("PONG!")
	case "set":
		return h.handleSet(key, value)
	case "get":
		return h.handleGet(key)
	case "exists":
		return h.handleExists(key)
	case "count":
		return h.handleCount()
	case "list", "keys":
		return h.handleList()
	case "help":
		return h.reply(strings.TrimSpace(helpString))
	default:
		h.reply("Invalid Command")
		return fmt.Errorf("%w: %q", ErrInvalidCommand, cmd)
	}
}

func (h *Handler) handleSet(key, value string) error {
	if key == "" {
		h.reply("Invalid Command")
		return ErrMissingKey
	}

	if err := h.store.Set([]byte(key), []byte(value)); err != nil {
		h.reply("Error while setting value")
		return err
	}

	return h.reply("ok")
}

func (h *Handler) handleGet(key string) error {
	if key == "" {
		h.reply("Invalid Command")
		return ErrMissingKey
	}

	value, found, err := h.store.Get([]byte(key))
	if err != nil {
		h.reply("Error while reading value")
		return err
	}

	if !found {
		return h.reply("nil")
	}

	return h.reply(string(value))
}

func (h *Handler) handleExists(key string) error {
	inspector, err := h.inspector()
	if err != nil {
		return err
	}

	return h.reply(strconv.FormatBool(inspector.Exists([]byte(key))))
}

func (h *Handler) handleCount() error {
	inspector, err := h.inspector()
	if err != nil {
		return err
	}

	return h.reply(strconv.Itoa(inspector.Count()))
}

func (h *Handler) handleList() error {
	inspector, err := h.inspector()
	if err != nil {
		return err
	}

	keys := inspector.Keys()
	if len(keys) == 0 {
		return h.reply("nil")
	}

	return h.reply("----- KEYS START -----\n" + strings.Join(keys, "\n") + "\n----- KEYS END -----")
}

func (h *Handler) inspector() (bitcask.Inspector, error) {
	inspector, ok := h.store.(bitcask.Inspector)
	if !ok {
		h.reply("Unsupported Command")
		return nil, ErrUnsupported
	}
	return inspector, nil
}

func (h *Handler) reply(msg string) error {
	_, err := fmt.Fprintln(h.out, msg)
	return err
}
