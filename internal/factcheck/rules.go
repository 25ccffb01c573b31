package factcheck

import (
	"strings"

	"govlens/internal/portal"
)

// fallbackRule is one entry of the ordered offline verdict table. Rules
// are evaluated top to bottom against the lowercased claim; the first
// rule whose keywords all appear wins.
type fallbackRule struct {
	keywords []string // all must be present
	anyOf    []string // at least one must be present, if set
	result   portal.FactCheckResult
}

// fallbackRules is the deterministic offline verdict table, consulted
// whenever the backend cannot produce a verdict. Order matters.
var fallbackRules = []fallbackRule{
	{
		anyOf: []string{"819", "536"},
		result: portal.FactCheckResult{
			Verdict:    portal.VerdictTrue,
			Confidence: 0.92,
			Explanation: "The Income-tax Bill, 2025 reduces the number of sections from 819 in " +
				"the Income-tax Act, 1961 to 536, as stated in the bill's statement of objects " +
				"and reasons.",
			Evidence: []portal.Evidence{
				{
					DocumentID:    "income-tax-2025",
					DocumentTitle: "The Income-tax Bill, 2025",
					Section:       "Statement of Objects and Reasons",
					Quote:         "The Bill consolidates the existing provisions into 536 sections across 23 chapters, against 819 sections in the Act being replaced.",
					SupportsClaim: true,
				},
			},
		},
	},
	{
		keywords: []string{"tax year"},
		result: portal.FactCheckResult{
			Verdict:    portal.VerdictTrue,
			Confidence: 0.88,
			Explanation: "The bill replaces the dual 'previous year' and 'assessment year' " +
				"concepts with a single unified 'tax year'.",
			Evidence: []portal.Evidence{
				{
					DocumentID:    "income-tax-2025",
					DocumentTitle: "The Income-tax Bill, 2025",
					Section:       "Clause 3",
					Quote:         "'Tax year' means the twelve months period of the financial year commencing on the 1st day of April.",
					SupportsClaim: true,
				},
			},
		},
	},
	{
		anyOf: []string{"crypto", "virtual digital asset"},
		result: portal.FactCheckResult{
			Verdict:    portal.VerdictTrue,
			Confidence: 0.85,
			Explanation: "Virtual digital assets are explicitly included in the bill's " +
				"definition of property and remain taxable.",
			Evidence: []portal.Evidence{
				{
					DocumentID:    "income-tax-2025",
					DocumentTitle: "The Income-tax Bill, 2025",
					Section:       "Clause 2(111)",
					Quote:         "Property includes any virtual digital asset held by the assessee.",
					SupportsClaim: true,
				},
			},
		},
	},
	{
		anyOf: []string{"tax rate", "tax slab", "new rates"},
		result: portal.FactCheckResult{
			Verdict:    portal.VerdictFalse,
			Confidence: 0.8,
			Explanation: "The Income-tax Bill, 2025 does not change tax rates or slabs; it " +
				"only restructures and simplifies the text of the law.",
			Evidence: []portal.Evidence{
				{
					DocumentID:    "income-tax-2025",
					DocumentTitle: "The Income-tax Bill, 2025",
					Section:       "Statement of Objects and Reasons",
					Quote:         "The Bill does not seek to alter the rates of tax currently in force.",
					SupportsClaim: false,
				},
			},
		},
	},
	{
		anyOf: []string{"one nation", "simultaneous election"},
		result: portal.FactCheckResult{
			Verdict:    portal.VerdictPartiallyTrue,
			Confidence: 0.7,
			Explanation: "The committee report recommends simultaneous national and state " +
				"elections, but the required constitutional amendments are still before a " +
				"joint parliamentary committee and have not been enacted.",
			Evidence: []portal.Evidence{
				{
					DocumentID:    "election-reform-2024",
					DocumentTitle: "High-Level Committee Report on Simultaneous Elections",
					Section:       "Recommendations",
					Quote:         "As a first step, elections to the House of the People and all State Legislative Assemblies be held simultaneously.",
					SupportsClaim: true,
				},
			},
		},
	},
}

// fallbackDefault is returned when no rule matches.
var fallbackDefault = portal.FactCheckResult{
	Verdict:    portal.VerdictUnverifiable,
	Confidence: 0.3,
	Explanation: "No relevant official documents found to verify this claim. This doesn't " +
		"mean the claim is false - we simply don't have the relevant government documents " +
		"indexed.",
	Evidence: []portal.Evidence{},
}

// FallbackVerdict evaluates the offline rule table against a claim.
// First match wins; no match yields the unverifiable default. The result
// is deterministic for a given claim.
func FallbackVerdict(claim string) portal.FactCheckResult {
	lower := strings.ToLower(claim)
	for _, rule := range fallbackRules {
		if rule.matches(lower) {
			res := rule.result
			res.Claim = claim
			res.Evidence = append([]portal.Evidence(nil), rule.result.Evidence...)
			return res
		}
	}
	res := fallbackDefault
	res.Claim = claim
	res.Evidence = []portal.Evidence{}
	return res
}

func (r fallbackRule) matches(lowerClaim string) bool {
	for _, kw := range r.keywords {
		if !strings.Contains(lowerClaim, kw) {
			return false
		}
	}
	if len(r.anyOf) == 0 {
		return len(r.keywords) > 0
	}
	for _, kw := range r.anyOf {
		if strings.Contains(lowerClaim, kw) {
			return true
		}
	}
	return false
}
