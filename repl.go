package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"

	"typon/pkg/check"
	"typon/pkg/sig"
)

const historyFile = ".typon_history"

const replBanner = `typon repl
  JSON :: TYPE        validate a value, e.g.  [1,2,3] :: list[int]
  :parse SIGNATURE    parse a signature, e.g. :parse (int) -> int ! {io}
  :quit               exit`

func replAction(ctx context.Context, cmd *cli.Command) error {
	fmt.Println(replBanner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	validator := check.NewValidator()

	for {
		line, err := ln.Prompt("typon> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		switch {
		case line == ":quit" || line == ":q":
			return nil
		case strings.HasPrefix(line, ":parse "):
			parsed, err := sig.Parse(strings.TrimPrefix(line, ":parse "))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Println(parsed)
		case strings.HasPrefix(line, ":"):
			fmt.Println("unknown command. Type :quit to exit.")
		default:
			value, annotation, ok := splitReplLine(line)
			if !ok {
				fmt.Println("expected: JSON :: TYPE")
				continue
			}
			res, err := validator.ValidateJSON([]byte(value), annotation)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Println(res)
		}
	}
}

func splitReplLine(line string) (value, annotation string, ok bool) {
	i := strings.Index(line, "::")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+2:]), true
}
