package mock

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/empowr-credit/internal/schemas"
	"github.com/jonathan/empowr-credit/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDashboard(t *testing.T) {
	d := SampleDashboard()

	assert.Equal(t, "John Doe", d.User.Name)
	assert.Len(t, d.FinancialMetrics, 4)
	assert.Len(t, d.CreditAccounts, 4)
	assert.Len(t, d.PaymentHistory, 12)
	assert.Len(t, d.RecentActivity, 5)
	assert.Equal(t, 11, d.OnTimeCount())
	assert.Len(t, d.RiskFactors.Positive, 5)
	assert.Len(t, d.RiskFactors.Cautions, 3)
	assert.Equal(t, scoring.BandWarning, scoring.BandFor(d.CreditScore.BlendedScore))
}

func TestSampleDashboard_IsACopy(t *testing.T) {
	a := SampleDashboard()
	a.CreditAccounts[0].Balance = 0
	assert.Equal(t, 2450.0, SampleDashboard().CreditAccounts[0].Balance)
}

func TestSampleScore_JSONFlattensScore(t *testing.T) {
	raw, err := json.Marshal(SampleDashboard().CreditScore)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, float64(742), m["blendedScore"])
	assert.Equal(t, "Low", m["riskLevel"])
	assert.Contains(t, m, "trends")

	// The extra trends field does not break the stored-score schema.
	assert.NoError(t, schemas.ValidateCreditScore(raw))
}

func TestIndustryBenchmarks(t *testing.T) {
	b := IndustryBenchmarks()
	assert.Equal(t, 10.0, b.CreditUtilization.Excellent)
	assert.Equal(t, 95.0, b.PaymentHistory.Good)
	assert.Equal(t, 2.0, b.AverageAccountAge.Poor)
}
