package render

import "testing"

func TestMapSeverityBands(t *testing.T) {
	cases := []struct {
		level int
		band  Band
		fill  float64
	}{
		{0, BandNormal, 0},
		{1, BandNormal, 20},
		{2, BandNormal, 40},
		{3, BandWarning, 60},
		{4, BandCritical, 80},
		{5, BandCritical, 100},
	}
	for _, tc := range cases {
		g := MapSeverity(tc.level)
		if g.Band != tc.band {
			t.Errorf("level %d: expected band %s, got %s", tc.level, tc.band, g.Band)
		}
		if g.FillPercent != tc.fill {
			t.Errorf("level %d: expected fill %v, got %v", tc.level, tc.fill, g.FillPercent)
		}
	}
}
