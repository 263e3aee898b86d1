package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContribution(t *testing.T) {
	tests := []struct {
		name      string
		weight    float64
		changePct float64
		want      float64
	}{
		{"five percent weight, two percent move", 0.05, 2.0, 0.1000},
		{"negative move", 0.084, -1.5, -0.1260},
		{"zero weight", 0, 3.5, 0},
		{"zero move", 0.1, 0, 0},
		{"rounds to four decimals", 0.0333, 1.11, 0.037},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contribution(tt.weight, tt.changePct))
		})
	}
}
