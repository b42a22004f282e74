package render

// Band is a named severity category driving visual color coding.
type Band string

const (
	BandCritical Band = "critical"
	BandWarning  Band = "warning"
	BandElevated Band = "elevated"
	BandNormal   Band = "normal"
)

// SeverityGauge describes how a numeric severity level should be displayed.
type SeverityGauge struct {
	FillPercent float64 `json:"fillPercent"`
	Band        Band    `json:"band"`
}

// MapSeverity converts a 0-5 severity level to its visual band and
// proportional fill. Branch order matters and is part of the contract.
func MapSeverity(level int) SeverityGauge {
	g := SeverityGauge{FillPercent: float64(level) / 5 * 100}
	switch {
	case level >= 4:
		g.Band = BandCritical
	case level == 3:
		g.Band = BandWarning
	case level > 2:
		// dead for whole levels 0-5 once the two arms above are checked
		g.Band = BandElevated
	default:
		g.Band = BandNormal
	}
	return g
}
