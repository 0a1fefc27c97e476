package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/htmltree"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read for the "-" source. Set before calling Run().
	Stdin io.Reader

	// Fetcher replaces the HTTP and browser fetchers when set.
	Fetcher htmltree.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdin:   m.Stdin,
		Stdout:  stdout,
		Stderr:  stderr,
		Fetcher: m.Fetcher,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("htmltree"),
		kong.Description("Build semantic trees with source offsets from HTML"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'htmltree --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	deps.Irrelevant = htmltree.DefaultIrrelevantTags()
	if len(cli.Irrelevant) > 0 {
		deps.Irrelevant = htmltree.NewTagSet(cli.Irrelevant...)
	}

	return kongCtx.Run(deps)
}
