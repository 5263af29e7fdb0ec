package launcher

import (
	"context"

	"github.com/rntlauncher/rnt/internal/log"
)

// RunWithReload launches the engine and restarts it with the same args each
// time a value arrives on changes. It returns when the engine exits on its
// own, or nil once ctx is cancelled.
func RunWithReload(ctx context.Context, l Launcher, args []string, changes <-chan []string) error {
	for n := 0; ; n++ {
		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- l.Launch(runCtx, args) }()

		select {
		case err := <-done:
			cancel()
			if Interrupted(ctx, err) {
				return nil
			}
			return err

		case paths, ok := <-changes:
			cancel()
			<-done
			if !ok {
				return nil
			}
			log.Info(log.CatLaunch, "Assets changed, relaunching", "paths", paths, "restart", n+1)

		case <-ctx.Done():
			cancel()
			<-done
			return nil
		}
	}
}
