// internal/models/survey.go
package models

import "regexp"

// CreditBand is the self-reported credit score range collected in the survey.
type CreditBand string

const (
	CreditExcellent CreditBand = "740+"
	CreditGood      CreditBand = "670-739"
	CreditFair      CreditBand = "580-669"
	CreditPoor      CreditBand = "below-580"
)

// PropertyType enumerates the property categories the survey accepts.
type PropertyType string

const (
	PropertySingleFamily PropertyType = "Single Family"
	PropertyCondo        PropertyType = "Condo"
	PropertyTownhouse    PropertyType = "Townhouse"
	PropertyMultiFamily  PropertyType = "Multi-Family"
)

// UseOfFunds enumerates what the borrower plans to do with the line of credit.
type UseOfFunds string

const (
	UseRenovation    UseOfFunds = "Home Renovation"
	UseConsolidation UseOfFunds = "Debt Consolidation"
	UseEducation     UseOfFunds = "Education Expenses"
	UseInvestment    UseOfFunds = "Investment Property"
	UseEmergency     UseOfFunds = "Emergency Fund"
	UseOther         UseOfFunds = "Other"
)

// Timeframe enumerates how soon the borrower wants funding.
type Timeframe string

const (
	TimeframeImmediate Timeframe = "Immediately"
	TimeframeThirty    Timeframe = "Within 30 days"
	TimeframeSixty     Timeframe = "Within 60 days"
	TimeframeExploring Timeframe = "Just exploring"
)

// SurveyResponse is the complete payload emitted by the survey wizard on
// submission. Amounts are whole USD.
type SurveyResponse struct {
	HomeValue       float64      `json:"home_value"`
	MortgageBalance float64      `json:"mortgage_balance"`
	CreditScoreBand CreditBand   `json:"credit_score_band"`
	PropertyType    PropertyType `json:"property_type"`
	UseOfFunds      UseOfFunds   `json:"use_of_funds"`
	Timeframe       Timeframe    `json:"timeframe"`
	ZipCode         string       `json:"zip_code"`
	FirstName       string       `json:"first_name"`
	LastName        string       `json:"last_name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
}

// Equity is home value minus the remaining mortgage. Deliberately not
// clamped at zero: an underwater survey flows through as negative equity.
func (s *SurveyResponse) Equity() float64 {
	return s.HomeValue - s.MortgageBalance
}

// AvailableCash is the borrowable share of equity at an 85% combined LTV cap,
// floored to whole dollars.
func (s *SurveyResponse) AvailableCash() int {
	return FloorCash(s.Equity())
}

// FloorCash applies the 85% borrowable-equity rule used everywhere a cash
// estimate is shown.
func FloorCash(equity float64) int {
	cash := equity * 0.85
	if cash >= 0 {
		return int(cash)
	}
	// Go truncates toward zero; mirror floor semantics for negatives too.
	truncated := int(cash)
	if float64(truncated) == cash {
		return truncated
	}
	return truncated - 1
}

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// ValidZipCode reports whether zip is exactly five digits.
func ValidZipCode(zip string) bool {
	return zipPattern.MatchString(zip)
}

func (b CreditBand) Valid() bool {
	switch b {
	case CreditExcellent, CreditGood, CreditFair, CreditPoor:
		return true
	}
	return false
}

func (p PropertyType) Valid() bool {
	switch p {
	case PropertySingleFamily, PropertyCondo, PropertyTownhouse, PropertyMultiFamily:
		return true
	}
	return false
}

func (u UseOfFunds) Valid() bool {
	switch u {
	case UseRenovation, UseConsolidation, UseEducation, UseInvestment, UseEmergency, UseOther:
		return true
	}
	return false
}

func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeImmediate, TimeframeThirty, TimeframeSixty, TimeframeExploring:
		return true
	}
	return false
}
