package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

// renderText assembles the per-file report blocks and the trailing summary
// into a single string.
func renderText(reports []Report, failedPaths int) string {
	var builder strings.Builder
	sort.Slice(reports, func(i, j int) bool { // Sort by path for consistent output
		return reports[i].Path < reports[j].Path
	})

	for _, report := range reports {
		builder.WriteString(fmt.Sprintf("--- File: %s ---\n", report.Path))
		if report.Err != nil {
			builder.WriteString(fmt.Sprintf("  Error: %v\n", report.Err))
		} else {
			builder.WriteString(fmt.Sprintf("  Size: %s\n", report.FormattedSize))
			builder.WriteString(fmt.Sprintf("  Type: %s\n", report.MIMEType))
			builder.WriteString(fmt.Sprintf("  Encoding: %s\n", report.Encoding))
			if report.SHA256 != "" {
				builder.WriteString(fmt.Sprintf("  SHA256: %s\n", report.SHA256))
			}
			if report.MD5 != "" {
				builder.WriteString(fmt.Sprintf("  MD5: %s\n", report.MD5))
			}
			if report.BLAKE2b != "" {
				builder.WriteString(fmt.Sprintf("  BLAKE2b: %s\n", report.BLAKE2b))
			}
		}
		builder.WriteString("----------------\n\n")
	}

	summary := summarize(reports, failedPaths)
	builder.WriteString("--- Summary ---\n")
	builder.WriteString(fmt.Sprintf("Total files processed: %d\n", summary.TotalFiles))
	builder.WriteString(fmt.Sprintf("Total size: %s\n", formatSize(summary.TotalSize)))
	if summary.Failed > 0 {
		builder.WriteString(fmt.Sprintf("Paths failed to process: %d\n", summary.Failed))
	}
	return builder.String()
}

// emitReport sends the assembled report to its destination: a PDF or text
// file when requested, the clipboard with -c, stdout otherwise.
func emitReport(content string) error {
	if pdfOutputFile != "" {
		if err := writePDF(content, pdfOutputFile); err != nil {
			return err
		}
		fmt.Printf("Report saved to %s\n", pdfOutputFile)
		return nil
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", outputFile, err)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
		return nil
	}

	if copyToClipboard {
		if err := clipboard.WriteAll(content); err != nil {
			logger.Warn().Err(err).Msg("could not write to clipboard")
			fmt.Println("\n--- Report (clipboard failed) ---")
			fmt.Println(content)
			return nil
		}
		fmt.Println("Report copied to clipboard.")
		return nil
	}

	fmt.Print(content)
	return nil
}
