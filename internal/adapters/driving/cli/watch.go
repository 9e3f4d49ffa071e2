package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/watch"
)

var (
	watchUserID    string
	watchProjectID string
	watchOrgID     string
	watchDebounce  int
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and ingest changes",
	Long: `Watches a directory tree and keeps the unit store in sync.

Created and modified files are ingested, superseding their earlier
units. Deleted files have their units removed. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchUserID, "user", "", "user id tag")
	watchCmd.Flags().StringVar(&watchProjectID, "project", "", "project id tag")
	watchCmd.Flags().StringVar(&watchOrgID, "org", "", "organisation id tag")
	watchCmd.Flags().IntVar(&watchDebounce, "debounce-ms", 0, "change coalescing window (0 = configured default)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	root := args[0]

	debounce := watchDebounce
	if debounce <= 0 && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			debounce = settings.Watch.Debounce()
		}
	}

	var (
		watcher *watch.Watcher
		err     error
	)
	if debounce > 0 {
		watcher, err = watch.NewWithDebounce(root, time.Duration(debounce)*time.Millisecond)
	} else {
		watcher, err = watch.New(root)
	}
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	defer watcher.Close()

	tags := domain.TenantTags{
		UserID:    watchUserID,
		ProjectID: watchProjectID,
		OrgID:     watchOrgID,
	}
	service := watch.NewService(watcher, ingestService, tags)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (ctrl-c to stop)\n", watcher.Root())
	return service.Run(ctx)
}
