// internal/catalog/catalog.go
// Package catalog holds the static lending partner roster. The roster is
// compiled in rather than stored in the database: it changes a few times a
// year and goes out with a release, reviewed like any other code change.
package catalog

import "heloc-workers/internal/models"

var partners = []models.PartnerRecord{
	{
		Name:           "Chase",
		Rating:         4.9,
		MinLoan:        25000,
		MaxLoan:        500000,
		AprFrom:        7.15,
		BaseMatchScore: 95,
		BestFor:        "Quick funding needs",
		WhyMatched:     "Fast approval process matches your immediate timeframe",
		CreditTiers:    []models.CreditBand{models.CreditExcellent, models.CreditGood},
		SpecialtyTags: []string{
			string(models.TimeframeImmediate),
			string(models.TimeframeThirty),
			string(models.UseConsolidation),
		},
	},
	{
		Name:           "Wells Fargo",
		Rating:         4.8,
		MinLoan:        25000,
		MaxLoan:        500000,
		AprFrom:        6.99,
		BaseMatchScore: 92,
		BestFor:        "Large loan amounts",
		WhyMatched:     "Best rates for your equity amount",
		CreditTiers:    []models.CreditBand{models.CreditExcellent},
		SpecialtyTags: []string{
			string(models.UseRenovation),
			string(models.UseInvestment),
		},
	},
	{
		Name:           "Bank of America",
		Rating:         4.7,
		MinLoan:        25000,
		MaxLoan:        500000,
		AprFrom:        7.25,
		BaseMatchScore: 88,
		BestFor:        "Flexible terms",
		WhyMatched:     "No annual fee and mobile-first experience",
		CreditTiers:    []models.CreditBand{models.CreditExcellent, models.CreditGood},
		SpecialtyTags: []string{
			string(models.UseRenovation),
			string(models.UseEducation),
		},
	},
	{
		Name:           "US Bank",
		Rating:         4.6,
		MinLoan:        15000,
		MaxLoan:        750000,
		AprFrom:        7.40,
		BaseMatchScore: 85,
		BestFor:        "Lower credit scores",
		WhyMatched:     "Works with a wider range of credit profiles",
		CreditTiers:    []models.CreditBand{models.CreditGood, models.CreditFair},
		SpecialtyTags: []string{
			string(models.UseConsolidation),
			string(models.UseEmergency),
		},
	},
	{
		Name:           "PNC Bank",
		Rating:         4.7,
		MinLoan:        25000,
		MaxLoan:        500000,
		AprFrom:        7.30,
		BaseMatchScore: 87,
		BestFor:        "Digital experience",
		WhyMatched:     "Virtual wallet integration and 24/7 support",
		CreditTiers:    []models.CreditBand{models.CreditExcellent, models.CreditGood},
		SpecialtyTags: []string{
			string(models.TimeframeExploring),
			string(models.TimeframeSixty),
		},
	},
	{
		Name:           "Regions Bank",
		Rating:         4.5,
		MinLoan:        10000,
		MaxLoan:        500000,
		AprFrom:        7.50,
		BaseMatchScore: 82,
		BestFor:        "First-time borrowers",
		WhyMatched:     "Lowest minimum loan amount and personalized service",
		CreditTiers:    []models.CreditBand{models.CreditGood, models.CreditFair, models.CreditPoor},
		SpecialtyTags: []string{
			string(models.UseOther),
			string(models.UseEmergency),
		},
	},
}

// Partners returns a copy of the roster so callers cannot mutate the
// package-level records.
func Partners() []models.PartnerRecord {
	out := make([]models.PartnerRecord, len(partners))
	copy(out, partners)
	return out
}

// ByName looks up a single partner. The second return is false when no
// partner with that name exists.
func ByName(name string) (models.PartnerRecord, bool) {
	for _, p := range partners {
		if p.Name == name {
			return p, true
		}
	}
	return models.PartnerRecord{}, false
}
