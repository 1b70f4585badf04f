package mock

import (
	"time"

	"github.com/jonathan/empowr-credit/internal/types"
)

// Trend is the direction of a financial metric.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// ActivityType colors an activity feed entry.
type ActivityType string

const (
	ActivitySuccess ActivityType = "success"
	ActivityInfo    ActivityType = "info"
)

type SampleUser struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	MemberSince string `json:"memberSince"`
}

type ScoreTrends struct {
	Monthly   string `json:"monthly"`
	Quarterly string `json:"quarterly"`
	Yearly    string `json:"yearly"`
}

// SampleScore is a credit score with its recent movement.
type SampleScore struct {
	types.CreditScore
	Trends ScoreTrends `json:"trends"`
}

type FinancialMetric struct {
	Label        string  `json:"label"`
	Value        string  `json:"value"`
	NumericValue float64 `json:"numericValue"`
	Change       string  `json:"change"`
	Trend        Trend   `json:"trend"`
}

type CreditAccount struct {
	ID            int     `json:"id"`
	Type          string  `json:"type"`
	Issuer        string  `json:"issuer"`
	Balance       float64 `json:"balance"`
	Limit         float64 `json:"limit"`
	Utilization   float64 `json:"utilization"`
	PaymentStatus string  `json:"paymentStatus"`
	OpenedDate    string  `json:"openedDate"`
}

type Payment struct {
	Month  string  `json:"month"`
	OnTime bool    `json:"onTime"`
	Amount float64 `json:"amount"`
}

type Activity struct {
	Date        string       `json:"date"`
	Action      string       `json:"action"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
}

type RiskFactors struct {
	Positive []string `json:"positive"`
	Cautions []string `json:"cautions"`
}

// DashboardData is the static data set the dashboard renders.
type DashboardData struct {
	User             SampleUser        `json:"user"`
	CreditScore      SampleScore       `json:"creditScore"`
	FinancialMetrics []FinancialMetric `json:"financialMetrics"`
	CreditAccounts   []CreditAccount   `json:"creditAccounts"`
	PaymentHistory   []Payment         `json:"paymentHistory"`
	RecentActivity   []Activity        `json:"recentActivity"`
	RiskFactors      RiskFactors       `json:"riskFactors"`
}

// OnTimeCount returns how many payments in the history were on time.
func (d DashboardData) OnTimeCount() int {
	n := 0
	for _, p := range d.PaymentHistory {
		if p.OnTime {
			n++
		}
	}
	return n
}

// Benchmark gives the thresholds of one metric for each rating.
type Benchmark struct {
	Excellent float64 `json:"excellent"`
	Good      float64 `json:"good"`
	Fair      float64 `json:"fair"`
	Poor      float64 `json:"poor"`
}

type Benchmarks struct {
	CreditUtilization Benchmark `json:"creditUtilization"`
	PaymentHistory    Benchmark `json:"paymentHistory"`
	AverageAccountAge Benchmark `json:"averageAccountAge"`
}

// SampleDashboard returns a fresh copy of the dashboard sample data.
func SampleDashboard() DashboardData {
	return DashboardData{
		User: SampleUser{
			Name:        "John Doe",
			Email:       "john.doe@example.com",
			MemberSince: "2022-01-15",
		},
		CreditScore: SampleScore{
			CreditScore: types.CreditScore{
				BlendedScore: 742,
				FicoScore:    720,
				EmpowrScore:  765,
				RiskLevel:    types.RiskLow,
				LastUpdated:  time.Date(2024, time.September, 19, 0, 0, 0, 0, time.UTC),
			},
			Trends: ScoreTrends{Monthly: "+12", Quarterly: "+28", Yearly: "+45"},
		},
		FinancialMetrics: []FinancialMetric{
			{Label: "Total Credit Limit", Value: "$85,000", NumericValue: 85000, Change: "+5%", Trend: TrendUp},
			{Label: "Credit Utilization", Value: "22%", NumericValue: 22, Change: "-3%", Trend: TrendDown},
			{Label: "Payment History", Value: "98%", NumericValue: 98, Change: "+1%", Trend: TrendUp},
			{Label: "Average Account Age", Value: "7.2 years", NumericValue: 7.2, Change: "+2 months", Trend: TrendUp},
		},
		CreditAccounts: []CreditAccount{
			{ID: 1, Type: "Credit Card", Issuer: "Chase Sapphire Preferred", Balance: 2450, Limit: 15000, Utilization: 16.3, PaymentStatus: "Current", OpenedDate: "2019-03-15"},
			{ID: 2, Type: "Credit Card", Issuer: "American Express Gold", Balance: 890, Limit: 25000, Utilization: 3.6, PaymentStatus: "Current", OpenedDate: "2020-07-22"},
			{ID: 3, Type: "Auto Loan", Issuer: "Bank of America", Balance: 18500, Limit: 35000, Utilization: 52.9, PaymentStatus: "Current", OpenedDate: "2022-01-10"},
			{ID: 4, Type: "Mortgage", Issuer: "Wells Fargo", Balance: 245000, Limit: 320000, Utilization: 76.6, PaymentStatus: "Current", OpenedDate: "2021-06-01"},
		},
		PaymentHistory: []Payment{
			{Month: "Sep 2024", OnTime: true, Amount: 2500},
			{Month: "Aug 2024", OnTime: true, Amount: 2500},
			{Month: "Jul 2024", OnTime: true, Amount: 2500},
			{Month: "Jun 2024", OnTime: true, Amount: 2500},
			{Month: "May 2024", OnTime: false, Amount: 2500},
			{Month: "Apr 2024", OnTime: true, Amount: 2500},
			{Month: "Mar 2024", OnTime: true, Amount: 2500},
			{Month: "Feb 2024", OnTime: true, Amount: 2500},
			{Month: "Jan 2024", OnTime: true, Amount: 2500},
			{Month: "Dec 2023", OnTime: true, Amount: 2500},
			{Month: "Nov 2023", OnTime: true, Amount: 2500},
			{Month: "Oct 2023", OnTime: true, Amount: 2500},
		},
		RecentActivity: []Activity{
			{Date: "2024-09-15", Action: "Credit assessment completed", Type: ActivitySuccess, Description: "New comprehensive credit assessment generated"},
			{Date: "2024-09-10", Action: "FICO score updated", Type: ActivityInfo, Description: "Monthly FICO score refresh from Experian"},
			{Date: "2024-09-05", Action: "New account added", Type: ActivityInfo, Description: "Chase Sapphire Reserve account detected"},
			{Date: "2024-09-01", Action: "Payment processed", Type: ActivitySuccess, Description: "Monthly payment of $2,500 processed successfully"},
			{Date: "2024-08-28", Action: "Credit limit increase", Type: ActivitySuccess, Description: "American Express increased credit limit by $5,000"},
		},
		RiskFactors: RiskFactors{
			Positive: []string{
				"Excellent payment history (98% on-time)",
				"Low credit utilization ratio (22%)",
				"Diverse credit mix with multiple account types",
				"Long average account age (7.2 years)",
				"No recent hard inquiries",
			},
			Cautions: []string{
				"Consider reducing credit utilization below 10%",
				"Avoid opening new accounts in the next 6 months",
				"Monitor for any changes in payment patterns",
			},
		},
	}
}

// IndustryBenchmarks returns the rating thresholds shown beside the metrics.
func IndustryBenchmarks() Benchmarks {
	return Benchmarks{
		CreditUtilization: Benchmark{Excellent: 10, Good: 30, Fair: 50, Poor: 100},
		PaymentHistory:    Benchmark{Excellent: 100, Good: 95, Fair: 85, Poor: 75},
		AverageAccountAge: Benchmark{Excellent: 10, Good: 7, Fair: 4, Poor: 2},
	}
}
