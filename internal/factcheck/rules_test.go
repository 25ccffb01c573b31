package factcheck

import (
	"testing"

	"govlens/internal/portal"
)

func TestFallbackRuleOrder(t *testing.T) {
	// A claim matching several rules takes the earliest one.
	res := FallbackVerdict("the 819 sections change the tax rate")
	if res.Verdict != portal.VerdictTrue || res.Confidence != 0.92 {
		t.Errorf("expected the section-count rule to win, got %s (%v)", res.Verdict, res.Confidence)
	}
}

func TestFallbackKeywordsCaseInsensitive(t *testing.T) {
	res := FallbackVerdict("Does the new law define a TAX YEAR for everyone?")
	if res.Verdict != portal.VerdictTrue {
		t.Errorf("expected tax-year rule match, got %s", res.Verdict)
	}
}

func TestFallbackCarriesClaim(t *testing.T) {
	claim := "crypto assets are taxed under the bill"
	res := FallbackVerdict(claim)
	if res.Claim != claim {
		t.Errorf("result claim: got %q, want %q", res.Claim, claim)
	}
}

func TestFallbackEvidenceIsCopied(t *testing.T) {
	a := FallbackVerdict("sections go from 819 to 536")
	a.Evidence[0].Quote = "mutated"
	b := FallbackVerdict("sections go from 819 to 536")
	if b.Evidence[0].Quote == "mutated" {
		t.Error("mutating one result's evidence must not affect later results")
	}
}
