// Command resave_pdf writes an unencrypted copy of a PDF that opens without a password.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"pdf-resaver/internal/config"
	apperrors "pdf-resaver/pkg/errors"
	"pdf-resaver/pkg/logger"

	"github.com/joho/godotenv"
)

const usage = "Usage: resave_pdf <input.pdf> <output.pdf>"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("resave_pdf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprintln(stderr, usage) }
	verify := fs.Bool("verify", false, "check the output page count with MuPDF")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	// A missing .env is normal for the CLI
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	if *verify {
		cfg.VerifyOutput = true
	}
	container := config.NewContainerWith(cfg, logger.NewLoggerTo(stderr, cfg.GetLogLevel()))

	if _, err := container.ResaveService.ResaveFile(fs.Arg(0), fs.Arg(1)); err != nil {
		return fail(stderr, "resave_pdf", err)
	}
	return 0
}

// fail prints err on a single line and returns the exit code
func fail(stderr io.Writer, prog string, err error) int {
	if apperrors.IsType(err, apperrors.ErrorTypeMissingInput) {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	fmt.Fprintf(stderr, "[%s] ERROR: %s\n", prog, err.Error())
	return 1
}
