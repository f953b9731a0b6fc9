package main

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 5   // Line height in mm
	pdfFontSize   = 9
)

// writePDF renders the assembled text report into an A4 Courier PDF at
// outputPath. The report is monospaced fixed-layout text, so no per-token
// styling is needed; MultiCell handles wrapping and page breaks.
func writePDF(content, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "") // Portrait, mm, A4, default font dir
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Courier", "", pdfFontSize)
	pdf.SetTextColor(0, 0, 0)

	// Core fonts are CP-1252; translate so non-ASCII path names don't render
	// as garbage.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, tr(content), "", "L", false)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	return nil
}
