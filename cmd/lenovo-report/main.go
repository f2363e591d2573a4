package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"lenovo-report/cmd/lenovo-report/commands"
	"lenovo-report/internal/components/telemetry"
	"lenovo-report/lib/osutil"
)

func run() int {
	ctx, stop := osutil.SignalContext(context.Background())
	defer stop()

	tel, err := telemetry.SetupFromEnv(ctx, "lenovo-report")
	if err != nil {
		slog.Warn("failed to set up telemetry, continuing without it", "err", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := tel.Shutdown(shutdownCtx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	}()

	return commands.ExecuteContext(ctx)
}

func main() {
	os.Exit(run())
}
