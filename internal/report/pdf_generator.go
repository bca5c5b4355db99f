// Package report renders analysis output: control-chart PNGs and the PDF
// summary report.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/wwt_capability_go/internal/analysis"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and flowing-content state for PDF
// generation.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - (2 * pdfMargin),
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["caption"] = func() {
		s.pdf.SetFont("Arial", "I", 9)
		s.pdf.SetTextColor(90, 90, 90)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	s.styles["statusRed"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetTextColor(200, 0, 0)
	}
	s.styles["statusOrange"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetTextColor(220, 120, 0)
	}
	s.styles["statusGreen"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetTextColor(0, 140, 0)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.pdf.AddPage()
		s.currentY = s.contentTopY
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))

	if width > pdfContentWidth {
		ratio := pdfContentWidth / width
		width = pdfContentWidth
		height *= ratio
	}
	s.checkAddPage(height)
	s.pdf.Image(imageName, pdfMargin, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height
	s.addSpacer(2)
}

// statusStyle picks the table-cell style for a capability tier.
func statusStyle(status analysis.Status) string {
	switch status {
	case analysis.StatusExcellent:
		return "statusGreen"
	case analysis.StatusMarginal:
		return "statusOrange"
	default:
		return "statusRed"
	}
}

// notes summarises the flags and error state of a result row.
func notes(r analysis.CapabilityResult) string {
	var parts []string
	if r.Err != nil {
		parts = append(parts, r.Err.Error())
	}
	if r.FallbackLimit {
		parts = append(parts, "fallback limit, not configured")
	}
	if r.ZeroVariance {
		parts = append(parts, "zero variance, Cpk sentinel")
	}
	return strings.Join(parts, "; ")
}

var summaryTableHeaders = []string{"Parameter", "Std B Limit", "Mean", "StdDev", "Cpk", "Status", "Notes"}
var summaryTableWidths = []float64{0.2, 0.1, 0.1, 0.1, 0.08, 0.12, 0.3}

func (s *pdfStyler) writeSummaryTable(summary *analysis.Summary) {
	widths := make([]float64, len(summaryTableWidths))
	for i, rel := range summaryTableWidths {
		widths[i] = rel * pdfContentWidth
	}

	s.checkAddPage(s.lineHeight * float64(len(summary.Results)+1))

	x := pdfMargin
	y := s.currentY
	s.applyStyle("tableHeader")
	for i, header := range summaryTableHeaders {
		s.pdf.SetXY(x, y)
		s.pdf.CellFormat(widths[i], s.lineHeight, header, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	s.currentY = y + s.lineHeight

	for _, res := range summary.Results {
		var cells []string
		cellStyle := make([]string, len(summaryTableHeaders))
		for i := range cellStyle {
			cellStyle[i] = "tableCell"
		}

		if res.Err != nil {
			cells = []string{res.Parameter, fmt.Sprintf("%g", res.Limit), "-", "-", "-", "ERROR", notes(res)}
			cellStyle[5] = "statusRed"
		} else {
			row := res.Row()
			cells = []string{
				row.Parameter,
				fmt.Sprintf("%g", row.Limit),
				fmt.Sprintf("%.3f", row.Mean),
				fmt.Sprintf("%.3f", row.StdDev),
				fmt.Sprintf("%.2f", row.Cpk),
				row.Status,
				notes(res),
			}
			cellStyle[5] = statusStyle(res.Status)
		}

		s.checkAddPage(s.lineHeight)
		x = pdfMargin
		y = s.currentY
		for i, cell := range cells {
			s.pdf.SetXY(x, y)
			s.applyStyle(cellStyle[i])
			s.pdf.CellFormat(widths[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += widths[i]
		}
		s.currentY = y + s.lineHeight
	}
}

// BuildPDFReport writes the capability report: a summary table with the
// rounded statistics and status per parameter, followed by one control chart
// per page. Charts are keyed by parameter name; a missing chart gets a
// placeholder note.
func BuildPDFReport(path string, summary *analysis.Summary, charts map[string][]byte) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph("WWT Process Capability & Compliance Report", "h1", "C")
	styler.addSpacer(2)
	styler.writeParagraph("Effluent quality vs DOE Standard B limits (mg/L)", "normal", "C")
	styler.addSpacer(5)

	if summary == nil || len(summary.Results) == 0 {
		styler.writeParagraph("No analysis results to display.", "normal", "L")
		return pdf.OutputFileAndClose(path)
	}

	styler.writeParagraph("Summary Report", "h2", "L")
	styler.writeSummaryTable(summary)
	styler.addSpacer(3)
	styler.writeParagraph(
		"Status Guide: Cpk < 1.0 NOT CAPABLE (high risk), 1.0 <= Cpk < 1.33 MARGINAL (warning), Cpk >= 1.33 EXCELLENT (safe)",
		"caption", "L")

	imgWidth := pdfContentWidth * 0.9
	imgHeight := imgWidth * (4.0 / 10.0) // chart aspect ratio

	for _, series := range summary.Series {
		styler.newPage()
		styler.writeParagraph(fmt.Sprintf("%s Analysis", series.Parameter), "h2", "L")
		if img, ok := charts[series.Parameter]; ok && len(img) > 0 {
			styler.addImage(img, "chart_"+series.Parameter, imgWidth, imgHeight)
		} else {
			styler.writeParagraph(fmt.Sprintf("Control chart for %s not available.", series.Parameter), "normal", "L")
		}
	}

	return pdf.OutputFileAndClose(path)
}
