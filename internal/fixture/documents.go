// Package fixture bundles the demo document set and serves it both as a
// local data source (the fallback when the backend is unreachable) and
// over HTTP through the demo server.
package fixture

import (
	"time"

	"govlens/internal/portal"
)

// DefaultDocumentID is the document shown when no id is supplied or the
// requested id is unknown to both the backend and the fixture table.
const DefaultDocumentID = "income-tax-2025"

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// documents is the bundled demo table, keyed by document id.
var documents = map[string]portal.Document{
	"income-tax-2025": {
		ID:             "income-tax-2025",
		Title:          "The Income-tax Bill, 2025",
		Category:       portal.CategoryBill,
		SourceMinistry: "Ministry of Finance",
		PublishedDate:  date(2025, time.February, 13),
		PageCount:      622,
		PDFURL:         "/files/income-tax-bill-2025.pdf",
		Summary: "The Income-tax Bill, 2025 replaces the Income-tax Act, 1961 with a " +
			"simplified, consolidated law. It reduces the number of sections from 819 to 536 " +
			"and cuts the word count by nearly half, without changing tax rates. The bill " +
			"introduces a unified 'tax year' in place of the assessment year and previous " +
			"year concepts, and presents exemptions and TDS provisions in tables instead of " +
			"provisos and explanations.",
		KeyPoints: []string{
			"Reduces sections from 819 to 536 and chapters from 47 to 23",
			"Replaces 'assessment year' and 'previous year' with a single 'tax year'",
			"No change to existing tax rates or slabs",
			"Exemptions and TDS/TCS provisions consolidated into tables",
			"Virtual digital assets explicitly included in the definition of property",
		},
		Journey: []portal.LegislativeStep{
			{Status: "Introduced", House: "Lok Sabha", Date: "13 Feb 2025", Tag: "done"},
			{Status: "Select Committee", House: "Lok Sabha", Date: "Mar 2025", Tag: "done"},
			{Status: "Under Review", House: "Committee", Date: "Ongoing", Tag: "active"},
			{Status: "Rajya Sabha Vote", House: "Rajya Sabha", Date: "Pending", Tag: "pending"},
			{Status: "Presidential Assent", House: "President", Date: "Pending", Tag: "pending"},
		},
		Timeline: &portal.Timeline{
			Before: portal.TimelineSection{
				Title:   "Before: The Income-tax Act, 1961",
				Summary: "Tax law spread across 819 sections amended over 4,000 times in six decades, with overlapping provisos, explanations and cross-references that made compliance difficult without professional help.",
				KeyPoints: []string{
					"819 sections and 47 chapters",
					"Over 4,000 amendments since 1961",
					"Dual 'previous year' and 'assessment year' system",
				},
			},
			Change: portal.TimelineSection{
				Title:   "What changes",
				Summary: "A rewritten, consolidated law with 536 sections, tabulated exemptions, and a single 'tax year'. Language is simplified and redundant provisions are dropped; tax rates stay the same.",
				KeyPoints: []string{
					"536 sections and 23 chapters",
					"Single unified 'tax year'",
					"Tables replace provisos and explanations",
				},
				SourceReference: "Clause 1-3, The Income-tax Bill, 2025",
			},
			Result: portal.TimelineSection{
				Title:   "Expected result",
				Summary: "Easier self-filing, fewer interpretation disputes, and lower compliance costs for individuals and small businesses once the new law takes effect.",
				KeyPoints: []string{
					"Simpler self-assessment for taxpayers",
					"Reduced litigation over interpretation",
					"No change in tax liability",
				},
			},
		},
	},
	"election-reform-2024": {
		ID:             "election-reform-2024",
		Title:          "High-Level Committee Report on Simultaneous Elections",
		Category:       portal.CategoryReport,
		SourceMinistry: "Ministry of Law and Justice",
		PublishedDate:  date(2024, time.March, 14),
		PageCount:      321,
		PDFURL:         "/files/simultaneous-elections-report.pdf",
		Summary: "The report recommends holding Lok Sabha and State Assembly elections " +
			"simultaneously, followed by synchronized municipal and panchayat polls within " +
			"a hundred days. It proposes constitutional amendments to align assembly terms " +
			"and a single electoral roll prepared by the Election Commission.",
		KeyPoints: []string{
			"Simultaneous Lok Sabha and State Assembly elections as a first step",
			"Municipal and panchayat elections within 100 days of the general election",
			"Single electoral roll and single elector photo identity card",
			"Constitutional amendments to Articles 83, 172 and 327 proposed",
		},
		Journey: []portal.LegislativeStep{
			{Status: "Committee Report", House: "High-Level Committee", Date: "14 Mar 2024", Tag: "done"},
			{Status: "Cabinet Approval", House: "Union Cabinet", Date: "18 Sep 2024", Tag: "done"},
			{Status: "Bill Introduced", House: "Lok Sabha", Date: "17 Dec 2024", Tag: "done"},
			{Status: "JPC Review", House: "Joint Committee", Date: "Ongoing", Tag: "active"},
		},
		Timeline: &portal.Timeline{
			Before: portal.TimelineSection{
				Title:   "Before: Staggered election cycles",
				Summary: "Elections to the Lok Sabha and thirty-plus state assemblies happen on independent cycles, keeping some part of the country in election mode almost every year.",
				KeyPoints: []string{
					"Repeated imposition of the model code of conduct",
					"High recurring election expenditure",
				},
			},
			Change: portal.TimelineSection{
				Title:   "What changes",
				Summary: "Assembly terms are aligned with the Lok Sabha term through transitory provisions so that national and state elections can be held together.",
				KeyPoints: []string{
					"One synchronized national and state election",
					"Local body polls within 100 days",
				},
			},
			Result: portal.TimelineSection{
				Title:   "Expected result",
				Summary: "Fewer disruptions to governance, lower election costs, and a single electoral roll shared across all three tiers of elections.",
				KeyPoints: []string{
					"Reduced election expenditure",
					"Continuity in policy implementation",
				},
			},
		},
	},
}
