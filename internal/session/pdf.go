package session

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// DefaultProbeTimeout bounds the PDF embed probe. The probe is a
// heuristic, not a correctness guarantee: an unreachable or slow file
// server simply sends the viewer to the summary fallback.
const DefaultProbeTimeout = 3 * time.Second

// PDFProber answers whether a document's source file can be embedded,
// by asking the hosting server directly instead of inspecting rendered
// content after the fact.
type PDFProber struct {
	client  *http.Client
	baseURL string
}

// NewPDFProber creates a prober. Relative PDF paths are resolved against
// baseURL. A zero timeout means DefaultProbeTimeout.
func NewPDFProber(baseURL string, timeout time.Duration) *PDFProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &PDFProber{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Embeddable issues a HEAD request for the PDF and accepts it when the
// server answers 2xx with a PDF content type. Any error, timeout, or
// other content type counts as not embeddable.
func (p *PDFProber) Embeddable(ctx context.Context, pdfURL string) bool {
	if pdfURL == "" {
		return false
	}
	u := pdfURL
	if strings.HasPrefix(u, "/") {
		u = p.baseURL + u
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	return strings.Contains(resp.Header.Get("Content-Type"), "application/pdf")
}
