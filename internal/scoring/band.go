package scoring

// Band is the dashboard's display coloring for a score.
type Band string

const (
	BandSuccess     Band = "success"
	BandWarning     Band = "warning"
	BandDestructive Band = "destructive"
)

// BandFor colors a score for the dashboard: >=750 success, >=700 warning,
// else destructive.
//
// These thresholds do not line up with RiskLevelFor (750/650). A 680 is
// "Medium" risk but renders as destructive. Product has not decided which
// table wins, so both are kept as they were specified.
func BandFor(score int) Band {
	switch {
	case score >= 750:
		return BandSuccess
	case score >= 700:
		return BandWarning
	default:
		return BandDestructive
	}
}

// Percent returns score as a share of MaxScore, for progress bars.
func Percent(score int) float64 {
	return float64(score) / MaxScore * 100
}
