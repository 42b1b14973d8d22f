// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements the sitenav command line tool.

It reads the same database as the API through the same cached retry client,
so search results match the public site exactly. Operators also use it to run
migrations and to hash the administrator password.
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/sitenav/internal/core/directory"
)

// Browser is the read side of the directory used by the query commands.
type Browser interface {
	Browse(ctx context.Context, state directory.FilterState, useCache bool) (*directory.Listing, error)
	Grouped(ctx context.Context, state directory.FilterState, useCache bool) ([]directory.Group, error)
	Tags(ctx context.Context, useCache bool) ([]directory.TagCount, error)
}

// Backend opens a [Browser]. The returned func releases its resources.
type Backend func(ctx context.Context, logger *slog.Logger) (Browser, func(), error)

// Env is what the commands read from and write to.
type Env struct {
	Out     io.Writer
	Err     io.Writer
	In      io.Reader
	Backend Backend
}

// NewRootCommand builds the command tree over env.
func NewRootCommand(env Env) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "sitenav",
		Short:         "sitenav – query and operate the site directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(env.Out)
	root.SetErr(env.Err)
	root.SetIn(env.In)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log retries and cache activity to stderr")

	logger := func() *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(env.Err, &slog.HandlerOptions{Level: level}))
	}

	root.AddCommand(
		newSearchCommand(env, logger),
		newGroupsCommand(env, logger),
		newTagsCommand(env, logger),
		newMigrateCommand(logger),
		newHashPasswordCommand(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	env := Env{Out: os.Stdout, Err: os.Stderr, In: os.Stdin, Backend: PostgresBackend}
	if err := NewRootCommand(env).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
