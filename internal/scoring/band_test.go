package scoring

import (
	"testing"

	"github.com/jonathan/empowr-credit/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandSuccess, BandFor(750))
	assert.Equal(t, BandWarning, BandFor(749))
	assert.Equal(t, BandWarning, BandFor(700))
	assert.Equal(t, BandDestructive, BandFor(699))
}

func TestBandFor_DisagreesWithRiskLevel(t *testing.T) {
	// 680 is Medium risk but is colored destructive on the dashboard.
	assert.Equal(t, types.RiskMedium, RiskLevelFor(680))
	assert.Equal(t, BandDestructive, BandFor(680))
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 100.0, Percent(850), 1e-9)
	assert.InDelta(t, 84.705, Percent(720), 1e-3)
}
