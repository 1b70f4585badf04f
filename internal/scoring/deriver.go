// Package scoring derives the demo's blended credit score from an assessment.
//
// The numbers are a presentation stub with no statistical meaning: a base of
// 600, an income bonus, a debt penalty, and a random jitter for the Empowr
// component. The jitter comes from an injected generator so that callers which
// need reproducible output can seed it.
package scoring

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonathan/empowr-credit/internal/types"
)

const (
	MinScore = 300
	MaxScore = 850

	baseScore      = 600
	maxIncomeBonus = 100
	jitterSpread   = 25

	ficoWeight   = 0.6
	empowrWeight = 0.4

	lowRiskFloor    = 750
	mediumRiskFloor = 650
)

// Deriver computes mock scores. It is safe for concurrent use.
type Deriver struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewDeriver returns a Deriver whose jitter is drawn from rng.
// A nil rng falls back to an unseeded source.
func NewDeriver(rng *rand.Rand) *Deriver {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Deriver{rng: rng, now: time.Now}
}

// NewSeededDeriver returns a Deriver that produces the same sequence of
// scores for the same seed.
func NewSeededDeriver(seed uint64) *Deriver {
	return NewDeriver(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Derive computes a score from annual income and monthly debt.
func (d *Deriver) Derive(annualIncome, monthlyDebt float64) types.CreditScore {
	fico := Fico(annualIncome, monthlyDebt)
	empowr := Clamp(fico + d.jitter())

	ficoScore := int(math.Round(fico))
	empowrScore := int(math.Round(empowr))
	blended := Blend(ficoScore, empowrScore)

	return types.CreditScore{
		BlendedScore: blended,
		FicoScore:    ficoScore,
		EmpowrScore:  empowrScore,
		RiskLevel:    RiskLevelFor(blended),
		LastUpdated:  d.now().UTC(),
	}
}

// DeriveAssessment is Derive over the fields of a full assessment.
func (d *Deriver) DeriveAssessment(in types.AssessmentInput) types.CreditScore {
	return d.Derive(in.Employment.AnnualIncome, in.Financial.MonthlyDebt)
}

// jitter returns a uniform value in [-25, 25).
func (d *Deriver) jitter() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Float64()*2*jitterSpread - jitterSpread
}

// Fico returns the clamped, unrounded FICO stand-in.
func Fico(annualIncome, monthlyDebt float64) float64 {
	bonus := math.Min(annualIncome/1000, maxIncomeBonus)
	penalty := monthlyDebt / 10
	return Clamp(baseScore + bonus - penalty)
}

// Clamp limits v to [MinScore, MaxScore].
func Clamp(v float64) float64 {
	return math.Min(MaxScore, math.Max(MinScore, v))
}

// Blend returns round(0.6*fico + 0.4*empowr).
func Blend(fico, empowr int) int {
	return int(math.Round(ficoWeight*float64(fico) + empowrWeight*float64(empowr)))
}

// RiskLevelFor classifies a blended score: >=750 Low, >=650 Medium, else High.
func RiskLevelFor(blended int) types.RiskLevel {
	switch {
	case blended >= lowRiskFloor:
		return types.RiskLow
	case blended >= mediumRiskFloor:
		return types.RiskMedium
	default:
		return types.RiskHigh
	}
}
