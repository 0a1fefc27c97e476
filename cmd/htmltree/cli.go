package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/htmltree"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Irrelevant htmltree.TagSet
	Fetcher    htmltree.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose    bool     `short:"v" help:"Log each step to stderr"`
	Irrelevant []string `short:"i" env:"HTMLTREE_IRRELEVANT_TAGS" help:"Tags whose content is excluded from text (comma-separated, replaces the default set)"`

	Build BuildCmd `cmd:"" help:"Build trees from HTML files, URLs or stdin"`
	Tags  TagsCmd  `cmd:"" help:"Print the irrelevant tag set"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Sources     []string      `arg:"" optional:"" help:"HTML files or http(s) URLs; '-' or none reads stdin"`
	Extract     string        `short:"e" enum:"none,selector,readability,trafilatura" default:"none" help:"Select page content before building (${enum})"`
	Selector    string        `short:"s" help:"CSS selector for --extract=selector; empty detects the documentation framework"`
	Format      string        `short:"f" enum:"json,xml,text,markdown" default:"json" help:"Output format (${enum})"`
	Out         string        `short:"o" type:"path" help:"Write one file per source below this directory"`
	Name        string        `short:"n" default:"trees" help:"Subdirectory of --out that is replaced on each run"`
	Concurrency int           `short:"c" default:"4" help:"Sources processed concurrently"`
	Cache       int           `default:"0" help:"Reuse trees of identical inputs, keeping up to N (0 disables)"`
	Render      bool          `help:"Render URLs with headless Chrome instead of plain HTTP"`
	Rate        float64       `default:"1" help:"Requests per second per host"`
	Timeout     time.Duration `default:"10s" help:"Timeout per fetched page"`
}

// TagsCmd is the "tags" subcommand.
type TagsCmd struct{}
