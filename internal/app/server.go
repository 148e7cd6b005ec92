package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start serves HTTP in the background. The returned channel closes on
// SIGINT/SIGTERM/SIGHUP, or when the server cannot bind.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})
	sigCtx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr, "modules", a.enabledModules())

		err := a.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped unexpectedly", "error", err)
			a.cancel()
		}
	}()

	go func() {
		defer close(done)
		defer stop()

		<-sigCtx.Done()
		slog.Info("shutdown requested")
	}()

	return done
}

// Stop drains HTTP, waits for consumers and background work, then releases
// resources in reverse dependency order.
func (a *App) Stop(ctx context.Context) {
	a.cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to drain http server", "error", err)
	}

	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background work ended with errors", "error", err)
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resource", "name", c.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application stopped")
}

func (a *App) enabledModules() []string {
	var out []string
	for _, m := range []string{"catalog", "lead", "identity", "notification", "site"} {
		if a.config.GetBool("modules." + m + ".enabled") {
			out = append(out, m)
		}
	}
	return out
}
