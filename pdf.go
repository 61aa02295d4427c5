package main

import (
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 297 // A4 landscape width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 5   // Line height in mm
	pdfFontSize   = 9
)

// generatePDF writes the table listing of entries to outputPath. The grid
// layout is exported as a table with the filename column only.
func generatePDF(layout *Layout, dir string, entries []DirectoryEntry, outputPath string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", pdfFontSize+2)
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight+1, tr(fmt.Sprintf("Listing of %s", dir)), "", "L", false)
	pdf.Ln(pdfLineHeight / 2.0)

	rows := layout.buildRows(entries)
	width := layout.nameWidth(rows)

	pdf.SetFont("Courier", "B", pdfFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, pdfLineHeight, layout.header(width), "", 1, "L", false, 0, "")

	pdf.SetFont("Courier", "", pdfFontSize)
	pdf.SetFillColor(255, 255, 0) // Highlighted entries
	for _, r := range rows {
		line := padRight(entryMarker(r.Entry)+r.Name, width+1) + layout.cells(r)
		highlighted := layout.role(r.Entry) == RoleHighlight
		pdf.CellFormat(0, pdfLineHeight, tr(line), "", 1, "L", highlighted, 0, "")
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	fmt.Fprintf(os.Stderr, "Successfully saved PDF to %s\n", outputPath)
	return nil
}
