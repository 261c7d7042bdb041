package cmd

import (
	"fmt"

	"github.com/MarcinSonic/TheNewsApp/internal/feed"
	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Show known sections and which are enabled",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}
		for _, s := range feed.AllSections() {
			mark := " "
			if cfg.Sections[string(s)] {
				mark = "x"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", mark, s)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nEdit %s to change sections, or press f in the browser.\n", path)
		return nil
	},
}
