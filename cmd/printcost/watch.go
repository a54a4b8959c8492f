package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/philipparndt/printcost/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchOpts calcOptions

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Recalculate the estimate whenever the file changes",
	Long: `Print the estimate, then watch the file, its settings file and catalog, and print a
fresh estimate after every change.
Each reload replaces the previous session completely.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addCalcFlags(watchCmd, &watchOpts)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	material, params, opts, err := watchOpts.resolve(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	cmd.SetContext(ctx)

	recalc := func() {
		if err := calculate(cmd, filename, material, params, opts, watchOpts.json); err != nil {
			logger.Error("estimate failed", "file", filename, "err", err)
		}
	}
	recalc()

	fw, err := watcher.NewFileWatcher(cfg.WatchDebounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	changes := make(chan string, 1)
	notify := func(changed string) {
		select {
		case changes <- changed:
		default:
		}
	}
	if err := fw.Watch(watchInputs(cmd, filename), notify); err != nil {
		return fmt.Errorf("failed to watch files: %w", err)
	}
	fw.Start()
	logger.Info("watching for changes", "file", filename)

	for {
		select {
		case changed := <-changes:
			logger.Info("file changed, reloading", "file", changed)
			// settings and catalog files are inputs too
			if m, p, o, err := watchOpts.resolve(cmd); err != nil {
				logger.Error("keeping previous settings", "err", err)
			} else {
				material, params, opts = m, p, o
			}
			fmt.Fprintln(cmd.OutOrStdout())
			recalc()

			if err := fw.RemoveAll(); err != nil {
				logger.Warn("failed to reset watches", "err", err)
			}
			if err := fw.Watch(watchInputs(cmd, filename), notify); err != nil {
				logger.Warn("some files are no longer watched", "err", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// watchInputs lists the model file and the settings files it is estimated with
func watchInputs(cmd *cobra.Command, filename string) []string {
	files := []string{filename}
	if path := watchOpts.settingsFile(cmd); path != "" {
		files = append(files, path)
	}
	if cfg.Catalog != "" {
		files = append(files, cfg.Catalog)
	}
	return files
}
