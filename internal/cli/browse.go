// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/sitenav/internal/core/directory"
	"github.com/taibuivan/sitenav/internal/core/site"
)

type filterFlags struct {
	category string
	tags     []string
	asJSON   bool
}

func (flags *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flags.category, "category", "c", "", "Only sites in this category id")
	cmd.Flags().StringSliceVarP(&flags.tags, "tag", "t", nil, "Keep sites with a tag containing any of these (repeatable)")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Print JSON instead of a table")
}

func (flags *filterFlags) state(args []string) directory.FilterState {
	state := directory.DefaultFilterState()
	if flags.category != "" {
		state.CategoryID = flags.category
	}
	state.Query = strings.Join(args, " ")
	if len(flags.tags) > 0 {
		state.Tags = flags.tags
	}
	return state
}

// withBrowser opens the backend for the duration of run.
func withBrowser(cmd *cobra.Command, env Env, logger func() *slog.Logger, run func(Browser) error) error {
	browser, release, err := env.Backend(cmd.Context(), logger())
	if err != nil {
		return err
	}
	defer release()
	return run(browser)
}

func newSearchCommand(env Env, logger func() *slog.Logger) *cobra.Command {
	flags := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "List active sites matching a query, category and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBrowser(cmd, env, logger, func(browser Browser) error {
				listing, err := browser.Browse(cmd.Context(), flags.state(args), true)
				if err != nil {
					return err
				}
				if flags.asJSON {
					return writeJSON(cmd.OutOrStdout(), listing)
				}
				printSites(cmd.OutOrStdout(), listing.Items)
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d sites\n", listing.Matched, listing.Total)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newGroupsCommand(env Env, logger func() *slog.Logger) *cobra.Command {
	flags := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "groups [query...]",
		Short: "Show matching sites grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBrowser(cmd, env, logger, func(browser Browser) error {
				groups, err := browser.Grouped(cmd.Context(), flags.state(args), true)
				if err != nil {
					return err
				}
				if flags.asJSON {
					return writeJSON(cmd.OutOrStdout(), groups)
				}
				for i, group := range groups {
					if i > 0 {
						fmt.Fprintln(cmd.OutOrStdout())
					}
					fmt.Fprintf(cmd.OutOrStdout(), "# %s (%d)\n", groupTitle(group), len(group.Sites))
					printSites(cmd.OutOrStdout(), group.Sites)
				}
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newTagsCommand(env Env, logger func() *slog.Logger) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Show tag frequencies, most used first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBrowser(cmd, env, logger, func(browser Browser) error {
				counts, err := browser.Tags(cmd.Context(), true)
				if err != nil {
					return err
				}
				if limit > 0 && len(counts) > limit {
					counts = counts[:limit]
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), counts)
				}
				writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				for _, count := range counts {
					fmt.Fprintf(writer, "%s\t%d\n", count.Tag, count.Count)
				}
				return writer.Flush()
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many tags")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

// # Output

func printSites(out io.Writer, sites []*site.Site) {
	if len(sites) == 0 {
		fmt.Fprintln(out, "No sites found.")
		return
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "TITLE\tCATEGORY\tURL\tTAGS")
	for _, s := range sites {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", s.Title, s.Category, s.URL, strings.Join(s.Tags, ", "))
	}
	_ = writer.Flush()
}

func groupTitle(group directory.Group) string {
	if group.Category.Name != "" {
		return group.Category.Name
	}
	return group.Category.ID
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
