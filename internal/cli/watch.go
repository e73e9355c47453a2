package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AI-call-center/modern-dashboard/pkg/flow"
)

// reloadDebounce batches the bursts of events editors emit on save.
const reloadDebounce = 200 * time.Millisecond

// ReloadPrinter returns a WatchFlows callback that lists every reloaded
// catalog on out and reports failures on errOut.
func ReloadPrinter(out, errOut io.Writer) func(*flow.Catalog, error) {
	return func(catalog *flow.Catalog, err error) {
		if err != nil {
			fmt.Fprintf(errOut, ">>> reload failed: %v\n", err)
			return
		}
		fmt.Fprintln(out, ">>> flows reloaded")
		if err := ListFlows(out, catalog); err != nil {
			fmt.Fprintf(errOut, ">>> listing flows failed: %v\n", err)
		}
	}
}

// WatchFlows reloads the catalog whenever a YAML file in dir changes and
// hands the result (or the load error) to onReload. It blocks until ctx is
// cancelled.
func WatchFlows(ctx context.Context, dir string, logger *slog.Logger, onReload func(*flow.Catalog, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Info("watching flows", "dir", dir)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isFlowFile(event.Name) || event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("flow file changed", "path", event.Name, "op", event.Op.String())
			pending = time.After(reloadDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-pending:
			pending = nil
			onReload(LoadCatalog(dir))
		}
	}
}

func isFlowFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
