// Command extractor parses the raw codon usage workbook of every configured
// species and writes the combined workbook consumed by the analyzer.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"codonusage/internal/app"
	"codonusage/internal/infrastructure"
	"codonusage/internal/services"
)

func main() {
	os.Exit(run("", os.Stdout))
}

// run executes one extraction and returns the process exit code.
func run(configFile string, out io.Writer) int {
	application, err := app.NewApplication("extractor", configFile)
	if err != nil {
		fmt.Fprintln(out, app.Describe(err))
		return 1
	}

	ctx := infrastructure.EnsureRunID(context.Background())
	defer application.Close(ctx)

	application.Logger.InfoContext(ctx, "Starting codon usage extraction",
		slog.String("run_id", infrastructure.GetRunID(ctx)),
		slog.String("input_dir", application.Paths.InputDir))

	svc := services.NewExtractionServiceWithLogger(
		application.Config, application.Paths, application.Metrics(), application.Logger)
	svc.Progress = out

	if _, err := svc.Run(ctx); err != nil {
		application.Logger.ErrorContext(ctx, "Extraction did not produce a combined workbook",
			slog.String("error", err.Error()))
		return app.ExitCode(err)
	}
	return 0
}
