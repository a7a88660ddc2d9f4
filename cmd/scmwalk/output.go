package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"scmkit/internal/app"
)

func printReport(out io.Writer, report *app.Report, jsonOutput bool) error {
	if jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	fmt.Fprintf(out, "run %s (owner %s): %d project(s) in %s\n",
		report.RunID, report.Owner, len(report.Records), report.Duration.Round(time.Millisecond))
	for _, record := range report.Records {
		if len(record.SourceIDs) == 0 {
			fmt.Fprintf(out, "  %s (no sources)\n", record.Name)
			continue
		}
		fmt.Fprintf(out, "  %s: %s\n", record.Name, strings.Join(record.SourceIDs, ", "))
	}
	return nil
}
