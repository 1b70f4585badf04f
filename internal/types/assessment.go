package types

// PersonalInfo is step 1 of the assessment.
type PersonalInfo struct {
	FirstName            string `json:"firstName" validate:"required"`
	LastName             string `json:"lastName" validate:"required"`
	DateOfBirth          string `json:"dateOfBirth" validate:"required"`
	SocialSecurityNumber string `json:"socialSecurityNumber" validate:"required,ssn"`
	Phone                string `json:"phone" validate:"required"`
	Email                string `json:"email" validate:"required,looseemail"`
}

// Address is step 2 of the assessment.
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required,oneof=ny ca tx fl"`
	ZipCode string `json:"zipCode" validate:"required,zip5"`
}

// Employment is step 3 of the assessment.
type Employment struct {
	Status           string  `json:"status" validate:"required,oneof=employed parttime selfemployed unemployed retired student"`
	Employer         string  `json:"employer"`
	JobTitle         string  `json:"jobTitle"`
	AnnualIncome     float64 `json:"annualIncome" validate:"gte=0"`
	EmploymentLength string  `json:"employmentLength" validate:"omitempty,oneof=less1 1-2 3-5 5plus"`
}

// Financial is step 4 of the assessment.
type Financial struct {
	MonthlyRent         float64 `json:"monthlyRent" validate:"gte=0"`
	MonthlyDebt         float64 `json:"monthlyDebt" validate:"gte=0"`
	BankingRelationship string  `json:"bankingRelationship" validate:"omitempty,oneof=checking savings both none"`
	ExistingCredit      string  `json:"existingCredit" validate:"omitempty,oneof=excellent good fair poor none"`
}

// AssessmentInput is everything the applicant enters across the wizard.
type AssessmentInput struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Address      Address      `json:"address"`
	Employment   Employment   `json:"employment"`
	Financial    Financial    `json:"financial"`
}

// Option is a value/label pair offered by a select field.
type Option struct {
	Value string
	Label string
}

// StateOptions lists the residence states the form offers.
var StateOptions = []Option{
	{Value: "ny", Label: "New York"},
	{Value: "ca", Label: "California"},
	{Value: "tx", Label: "Texas"},
	{Value: "fl", Label: "Florida"},
}

// EmploymentStatusOptions lists the employment statuses the form offers.
var EmploymentStatusOptions = []Option{
	{Value: "employed", Label: "Employed Full-Time"},
	{Value: "parttime", Label: "Employed Part-Time"},
	{Value: "selfemployed", Label: "Self-Employed"},
	{Value: "unemployed", Label: "Unemployed"},
	{Value: "retired", Label: "Retired"},
	{Value: "student", Label: "Student"},
}

// EmploymentLengthOptions lists the tenure buckets the form offers.
var EmploymentLengthOptions = []Option{
	{Value: "less1", Label: "Less than 1 year"},
	{Value: "1-2", Label: "1-2 years"},
	{Value: "3-5", Label: "3-5 years"},
	{Value: "5plus", Label: "5+ years"},
}

// BankingRelationshipOptions lists the banking relationships the form offers.
var BankingRelationshipOptions = []Option{
	{Value: "checking", Label: "Checking Account Only"},
	{Value: "savings", Label: "Savings Account Only"},
	{Value: "both", Label: "Checking & Savings"},
	{Value: "none", Label: "No Banking Relationship"},
}

// ExistingCreditOptions lists the self-reported credit bands the form offers.
var ExistingCreditOptions = []Option{
	{Value: "excellent", Label: "Excellent (750+)"},
	{Value: "good", Label: "Good (700-749)"},
	{Value: "fair", Label: "Fair (650-699)"},
	{Value: "poor", Label: "Poor (Below 650)"},
	{Value: "none", Label: "No Credit History"},
}

// OptionLabel returns the label for value, or value itself when unknown.
func OptionLabel(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
