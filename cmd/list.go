package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MarcinSonic/TheNewsApp/internal/feed"
	"github.com/spf13/cobra"
)

var (
	flagListSections []string
	flagListJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch articles once and print them",
	Long: `Run a single search and print the articles to stdout.

Uses the sections enabled in the config unless --section is given.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringSliceVarP(&flagListSections, "section", "s", nil, "section to include (repeatable; overrides config)")
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "print articles as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, cmd.ErrOrStderr())

	spec := cfg.QuerySpec()
	if len(flagListSections) > 0 {
		spec.Sections = nil
		for _, name := range flagListSections {
			s, err := feed.ParseSection(name)
			if err != nil {
				return err
			}
			spec.Sections = append(spec.Sections, s)
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LoadTimeoutDuration())
	defer cancel()

	res := newPipeline(cfg, log).Load(ctx, spec)
	if res.Reason != feed.ReasonOK {
		return fmt.Errorf("%s: %w", res.Reason, res.Err)
	}

	if flagListJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res.Articles)
	}
	printArticles(cmd.OutOrStdout(), res.Articles)
	return nil
}

func printArticles(w io.Writer, articles []feed.Article) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return
	}
	for i, a := range articles {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, a.Title)
		meta := a.Section + " · " + a.Author
		if a.PublishedAt != "" {
			meta += " · " + a.PublishedAt
		}
		fmt.Fprintln(w, "  "+meta)
		fmt.Fprintln(w, "  "+a.URL)
	}
}
