package engine

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Command is a loosely-typed request from the UI layer. Args are validated
// and decoded into a typed struct at this boundary; nothing past it sees a
// raw map.
type Command struct {
	Name string
	Args map[string]any
}

const (
	CommandAsk          = "ask"
	CommandAccept       = "accept"
	CommandReject       = "reject"
	CommandSelect       = "select"
	CommandSetActive    = "set_active_file"
	CommandSetOpenFiles = "set_open_files"
)

type askArgs struct {
	Question string `mapstructure:"question"`
}

type editIDArgs struct {
	ID string `mapstructure:"id"`
}

type setActiveArgs struct {
	Path string `mapstructure:"path"`
}

type setOpenFilesArgs struct {
	Paths []string `mapstructure:"paths"`
}

// Execute decodes and dispatches a command. Ask returns an *Answer; the other
// commands return nil on success.
func (e *Engine) Execute(ctx context.Context, cmd Command) (any, error) {
	switch cmd.Name {
	case CommandAsk:
		var args askArgs
		if err := decodeArgs(cmd, &args); err != nil {
			return nil, err
		}
		if args.Question == "" {
			return nil, fmt.Errorf("command %q: question must not be empty", cmd.Name)
		}
		return e.Ask(ctx, args.Question)

	case CommandAccept:
		var args editIDArgs
		if err := decodeArgs(cmd, &args); err != nil {
			return nil, err
		}
		return nil, e.store.Accept(ctx, args.ID)

	case CommandReject:
		var args editIDArgs
		if err := decodeArgs(cmd, &args); err != nil {
			return nil, err
		}
		e.store.Reject(args.ID)
		return nil, nil

	case CommandSelect:
		var args editIDArgs
		if err := decodeArgs(cmd, &args); err != nil {
			return nil, err
		}
		e.store.Select(args.ID)
		return nil, nil

	case CommandSetActive:
		var args setActiveArgs
		if err := decodeArgs(cmd, &args); err != nil {
			return nil, err
		}
		e.SetActiveFile(args.Path)
		return nil, nil

	case CommandSetOpenFiles:
		var args setOpenFilesArgs
		if err := decodeArgs(cmd, &args); err != nil {
			return nil, err
		}
		e.SetOpenFiles(args.Paths)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown command %q", cmd.Name)
	}
}

// decodeArgs strictly decodes a command's args; unknown keys and type
// mismatches are errors.
func decodeArgs(cmd Command, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	args := cmd.Args
	if args == nil {
		args = map[string]any{}
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("command %q: invalid args: %w", cmd.Name, err)
	}
	return nil
}
