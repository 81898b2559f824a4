package main

import (
	"context"
	"fmt"
	"os"

	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/internal/pipeline"
	"bennypowers.dev/tickify/lsp"
	"bennypowers.dev/tickify/lsp/types"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

func newCommand(v string) *cli.Command {
	return &cli.Command{
		Name:    "tickify",
		Usage:   "Convert quoted strings to template literals as you type ${",
		Version: v,
		Flags:   serveFlags(),
		// Editors launch the bare binary
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the language server",
				Flags:  serveFlags(),
				Action: serveAction,
			},
			{
				Name:      "convert",
				Usage:     "Print a line with the literal at a position converted",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "line",
						Aliases:  []string{"l"},
						Usage:    "1-based line number",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "column",
						Aliases:  []string{"c"},
						Usage:    "1-based column, in characters",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "strategy",
						Usage: "Literal boundary strategy (bounded, line)",
						Value: string(pipeline.DefaultStrategy),
					},
				},
				Action: convertAction,
			},
		},
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "tcp",
			Usage: "Listen on `ADDR` instead of stdio",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Minimum stderr log level (debug, info, warn, error)",
			Value: log.LevelInfo.String(),
		},
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	level, err := log.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)

	server, err := lsp.NewServer()
	if err != nil {
		return fmt.Errorf("failed to create LSP server: %w", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Warn("Shutdown: %v", err)
		}
	}()

	levelName := level.String()
	server.SetCommandLineSettings(&types.ConfigOverlay{LogLevel: &levelName})

	if addr := cmd.String("tcp"); addr != "" {
		log.Info("Listening on %s", addr)
		return server.RunTCP(addr)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		log.Warn("tickify speaks the Language Server Protocol on stdin; run it from an editor, or see 'tickify --help'")
	}
	return server.RunStdio()
}

func convertAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("usage: tickify convert --line N --column C <file>")
	}
	strategy, err := pipeline.ParseStrategy(cmd.String("strategy"))
	if err != nil {
		return err
	}

	line, err := convertFile(ctx, cmd.Args().First(), int(cmd.Int("line")), int(cmd.Int("column")), strategy)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, line)
	return err
}
