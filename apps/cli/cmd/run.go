package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/fetchkit/packages/runfile"
)

var runCmd = &cobra.Command{
	Use:   "run <file.yaml>",
	Short: "Run a sequence of requests from a YAML file",
	Long: `Run every request defined in a YAML run file, in order.

Examples:
  fetchkit run requests.yaml
  fetchkit run requests.yaml --watch
  fetchkit run requests.yaml --record session.db`,
	Args: cobra.ExactArgs(1),
	RunE: runCommand,
}

// WatchDebounceDelay is the debounce delay for file watch events
const WatchDebounceDelay = 300 * time.Millisecond

var (
	runClientFlags clientFlags
	watchFlag      bool
	runBailFlag    bool
)

func init() {
	runCmd.Flags().BoolVar(&watchFlag, "watch", false, "re-run when the file changes")
	runCmd.Flags().BoolVar(&runBailFlag, "bail", false, "stop at the first failed request")
	addClientFlags(runCmd, &runClientFlags)
}

func runCommand(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := runFile(cmd, path); err != nil && !watchFlag {
		return err
	}

	if !watchFlag {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	// Debounce timer for rapid file changes
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Write) && filepath.Clean(event.Name) == filepath.Clean(path) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\nRe-running...\n\n", event.Name)
					if err := runFile(cmd, path); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}

func runFile(cmd *cobra.Command, path string) error {
	file, err := runfile.Load(path)
	if err != nil {
		return err
	}

	client, cleanup, err := runClientFlags.build()
	if err != nil {
		return err
	}
	defer cleanup()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	failed := 0

	for i := range file.Requests {
		req := &file.Requests[i]
		name := req.Name
		if name == "" {
			name = req.URL
		}

		opts, err := file.Options(req)
		if err != nil {
			return err
		}

		resp, err := client.Do(context.Background(), req.URL, opts)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", red("FAIL"), name, err)
			if runBailFlag {
				break
			}
			continue
		}

		mark := green("OK  ")
		if !resp.OK() {
			failed++
			mark = red("FAIL")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d %s (%dms)\n", mark, name, resp.StatusCode, resp.Status, resp.DurationMs())

		if !resp.OK() && runBailFlag {
			break
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(file.Requests))
	}
	return nil
}
