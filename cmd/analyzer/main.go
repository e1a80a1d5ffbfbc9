// Command analyzer loads the combined codon workbook, renders the comparison
// charts and exports the processed table as CSV.
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

// run executes one analysis and returns the process exit code.
func run(configFile string, out io.Writer) int {
	application, err := app.NewApplication("analyzer", configFile)
	if err != nil {
		fmt.Fprintln(out, app.Describe(err))
		return 1
	}

	ctx := infrastructure.EnsureRunID(context.Background())
	defer application.Close(ctx)

	application.Logger.InfoContext(ctx, "Starting codon usage analysis",
		slog.String("run_id", infrastructure.GetRunID(ctx)),
		slog.String("combined_workbook", application.Paths.CombinedWorkbook))

	svc := services.NewAnalysisServiceWithLogger(
		application.Config, application.Paths, application.Metrics(), application.Logger)
	svc.Progress = out

	table, err := svc.LoadTable(ctx)
	if err != nil {
		fmt.Fprintln(out, app.Describe(err))
		return app.ExitCode(err)
	}

	report, err := svc.Run(ctx, table)
	if err != nil {
		fmt.Fprintln(out, app.Describe(err))
		return app.ExitCode(err)
	}

	fmt.Fprintf(out, "Analysis complete: %d charts saved, %d skipped\n",
		len(report.Rendered), len(report.Skipped))
	return 0
}
