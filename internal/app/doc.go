// Package app provides initialization and teardown for the codon batch
// programs.
//
// # Initialization Flow
//
//	1. Load configuration from the YAML file and environment
//	2. Resolve paths and create the output and logs directories
//	3. Initialize logging
//	4. Initialize tracing and metrics
//
// # Usage
//
//	a, err := app.NewApplication("analyzer", "")
//	if err != nil {
//	    fmt.Println(app.Describe(err))
//	    os.Exit(1)
//	}
//	defer a.Close(ctx)
//
// Close writes the Prometheus metrics file and flushes spans. The package
// never calls os.Exit; ExitCode maps a run error to the process status.
package app
