// Command merge_pdf concatenates PDFs, re-saving encrypted inputs first.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"pdf-resaver/internal/config"
	apperrors "pdf-resaver/pkg/errors"
	"pdf-resaver/pkg/logger"

	"github.com/joho/godotenv"
)

const usage = "Usage: merge_pdf <output.pdf> <input.pdf>..."

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	_ = godotenv.Load()

	cfg := config.LoadConfig()
	container := config.NewContainerWith(cfg, logger.NewLoggerTo(stderr, cfg.GetLogLevel()))

	if err := container.MergeService.Merge(ctx, args[1:], args[0]); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeMissingInput) {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
		fmt.Fprintf(stderr, "[merge_pdf] ERROR: %s\n", err.Error())
		return 1
	}
	return 0
}
