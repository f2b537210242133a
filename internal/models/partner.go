// internal/models/partner.go
package models

// PartnerRecord is one lending partner in the static catalog. Records are
// loaded once at startup and never mutated.
type PartnerRecord struct {
	Name           string       `json:"name"`
	Rating         float64      `json:"rating"`
	MinLoan        int          `json:"minLoan"`
	MaxLoan        int          `json:"maxLoan"`
	AprFrom        float64      `json:"aprFrom"`
	BaseMatchScore int          `json:"baseMatchScore"`
	BestFor        string       `json:"bestFor"`
	WhyMatched     string       `json:"whyMatched"`
	CreditTiers    []CreditBand `json:"creditTiers"`
	SpecialtyTags  []string     `json:"specialtyTags"`
}

// ServesCreditBand reports whether the partner lends to the given band.
func (p *PartnerRecord) ServesCreditBand(band CreditBand) bool {
	for _, tier := range p.CreditTiers {
		if tier == band {
			return true
		}
	}
	return false
}

// HasSpecialty reports whether tag is one of the partner's specialty tags.
// Tags cover both timeframe and use-of-funds values.
func (p *PartnerRecord) HasSpecialty(tag string) bool {
	for _, t := range p.SpecialtyTags {
		if t == tag {
			return true
		}
	}
	return false
}

// CoversLoanAmount reports whether amount falls inside the partner's loan
// range, bounds inclusive.
func (p *PartnerRecord) CoversLoanAmount(amount int) bool {
	return amount >= p.MinLoan && amount <= p.MaxLoan
}

// ScoredPartner is a catalog record plus the score computed for one survey.
// It lives only for the duration of a single match computation.
type ScoredPartner struct {
	PartnerRecord
	FinalScore int `json:"finalScore"`
	Rank       int `json:"rank"`
}
