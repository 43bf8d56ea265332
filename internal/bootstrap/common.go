package bootstrap

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultCleanupTimeout = 5 * time.Second

type operation func(ctx context.Context) error

// signalContext is cancelled on termination syscalls so in-flight calls stop waiting.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
}

// cleanup runs the clean up operations concurrently and stops waiting for them once timeout elapses.
func cleanup(timeout time.Duration, ops map[string]operation) {
	if timeout <= 0 {
		timeout = defaultCleanupTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for key, op := range ops {
		wg.Add(1)
		go func() {
			defer wg.Done()

			logrus.Debug(fmt.Sprintf("cleaning up: %s", key))
			if err := op(ctx); err != nil {
				logrus.Error(fmt.Sprintf("%s: clean up failed: %s", key, err.Error()))
				return
			}

			logrus.Debug(fmt.Sprintf("%s was closed gracefully", key))
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logrus.Error(fmt.Sprintf("timeout %d ms has been elapsed, skip remaining clean up", timeout.Milliseconds()))
	}
}
