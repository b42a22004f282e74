package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/signintech/gopdf"

	"github.com/cropguard/console/internal/analysis"
)

var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// BuildPDF renders the report as a PDF document. It needs a DejaVu TTF
// font on the host; the error names the problem when none is found.
func BuildPDF(p *analysis.Prediction, r *analysis.Recommendation) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	loaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			loaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !loaded {
		return nil, fmt.Errorf("loading PDF font (is ttf-dejavu installed?): %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 18); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "CropGuard Analysis Report")
	pdf.Br(28)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	fields := []string{
		fmt.Sprintf("Disease: %s", p.DiseaseName),
		fmt.Sprintf("Confidence: %s%%", strconv.FormatFloat(p.Confidence, 'f', -1, 64)),
		fmt.Sprintf("Severity Level: %d/5", p.SeverityLevel),
		fmt.Sprintf("Image Quality: %s", p.ImageQuality),
	}
	for _, line := range fields {
		pdf.Cell(nil, line)
		pdf.Br(14)
	}
	pdf.Br(10)

	if err := pdf.SetFont("DejaVu", "", 13); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Treatment Recommendation")
	pdf.Br(16)

	if err := pdf.SetFont("DejaVu", "", 10); err != nil {
		return nil, err
	}
	lines, _ := pdf.SplitText(r.Text, 500)
	for _, l := range lines {
		pdf.Cell(nil, l)
		pdf.Br(12)
	}
	pdf.Br(14)

	if err := pdf.SetFont("DejaVu", "", 9); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Generated: %s", r.Timestamp))

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}
