package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cropguard/console/internal/analysis"
)

const banner = "================================"

// Build renders the flat text report for a completed analysis. The
// recommendation text is included raw; markup formatting is an on-screen
// concern only.
func Build(p *analysis.Prediction, r *analysis.Recommendation) string {
	var sb strings.Builder

	sb.WriteString(banner + "\n")
	sb.WriteString("CROPGUARD ANALYSIS REPORT\n")
	sb.WriteString(banner + "\n\n")

	sb.WriteString(fmt.Sprintf("Disease: %s\n", p.DiseaseName))
	sb.WriteString(fmt.Sprintf("Confidence: %s%%\n", strconv.FormatFloat(p.Confidence, 'f', -1, 64)))
	sb.WriteString(fmt.Sprintf("Severity Level: %d/5\n", p.SeverityLevel))
	sb.WriteString(fmt.Sprintf("Image Quality: %s\n\n", p.ImageQuality))

	sb.WriteString("TREATMENT RECOMMENDATION:\n")
	sb.WriteString(r.Text)
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Generated: %s\n", r.Timestamp))
	sb.WriteString(banner + "\n")

	return sb.String()
}

// Filename builds the download name for an exported report.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("cropguard_report_%s.%s", now.Format("20060102_150405"), ext)
}
