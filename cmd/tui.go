package cmd

import (
	"fmt"

	"github.com/MarcinSonic/TheNewsApp/internal/logging"
	"github.com/MarcinSonic/TheNewsApp/internal/tui"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logFile, err := logging.OpenFile(logging.LogPath())
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logFile.Close()
	log := newLogger(cfg, logFile)

	log.Info("starting tui", "version", version, "config", path, "sections", cfg.EnabledSections())

	return tui.Run(tui.RunOpts{
		Cfg:     cfg,
		CfgPath: path,
		Loader:  newPipeline(cfg, log),
		Log:     log,
		Version: version,
		Updates: newUpdateChecker(cfg, log),
	})
}
