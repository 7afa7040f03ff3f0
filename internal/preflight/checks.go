package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"quizsorter/internal/config"
	"quizsorter/internal/history"
	"quizsorter/internal/masterstore"
)

const storeCheckTimeout = 10 * time.Second

// CheckConfig re-runs validation so doctor reports bad values next to the
// path checks.
func CheckConfig(cfg *config.Config) Result {
	const name = "Configuration"
	if err := cfg.Validate(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: "valid"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckHistory opens the ledger, which creates or verifies its schema.
func CheckHistory(path string) Result {
	const name = "History database"
	store, err := history.OpenPath(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	_ = store.Close()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (schema ok)", path)}
}

// CheckStore lists the master store to prove it is reachable.
func CheckStore(ctx context.Context, store masterstore.Store, openErr error) Result {
	const name = "Master store"
	if openErr != nil {
		return Result{Name: name, Detail: fmt.Sprintf("open failed (%v)", openErr)}
	}
	if store == nil {
		return Result{Name: name, Detail: "not configured"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, storeCheckTimeout)
	defer cancel()

	keys, err := store.List(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s: %s", store.Driver(), summarizeStoreError(err))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d masters)", store.Driver(), len(keys))}
}

func summarizeStoreError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "list timed out (backend unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "list timed out (backend unreachable)"
	}
	return err.Error()
}
