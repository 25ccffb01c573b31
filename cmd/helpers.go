package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"govlens/internal/api"
	"govlens/internal/config"
	"govlens/internal/portal"
	"govlens/internal/session"
	"govlens/internal/store"
	"govlens/internal/translate"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// portalEnv bundles the pieces most commands need.
type portalEnv struct {
	cfg     *config.Config
	client  *api.Client
	state   *store.Store
	session *session.Session
}

func (e *portalEnv) close() {
	e.session.Close()
	if e.state != nil {
		if err := e.state.Close(); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "closing state store: %v\n", err)
		}
	}
}

// newPortalEnv wires config, API client, state store, and session. In
// demo mode the remote source is dropped entirely so everything comes
// from the bundled fixtures.
func newPortalEnv(ctx context.Context) (*portalEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIBaseURL, api.WithTimeout(cfg.RequestTimeout))

	state, err := store.Open(filepath.Join(cfg.DataDir, "state.db"))
	if err != nil {
		// State persistence is a convenience; the session works without it.
		fmt.Fprintf(os.Stderr, "Warning: state store unavailable: %v\n", err)
		state = nil
	}

	opts := session.Options{
		Prober: session.NewPDFProber(cfg.APIBaseURL, cfg.PDFProbeTimeout),
		Pass:   translate.NewPass(client),
	}
	if state != nil {
		opts.Prefs = state
	}
	if !cfg.Demo {
		opts.Remote = &session.RemoteSource{Client: client}
	}

	return &portalEnv{
		cfg:     cfg,
		client:  client,
		state:   state,
		session: session.New(ctx, opts),
	}, nil
}

// withSpinner runs fn behind an indeterminate spinner on stderr, the
// loading indicator for backend round trips.
func withSpinner(description string, fn func() error) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-time.After(100 * time.Millisecond):
				_ = bar.Add(1)
			}
		}
	}()

	err := fn()
	close(done)
	_ = bar.Clear()
	return err
}

// printView writes the rendered article panel to stdout.
func printView(view *session.DocumentView) {
	fmt.Printf("%s\n", view.Title)
	var meta []string
	if view.Category != "" {
		meta = append(meta, view.Category)
	}
	if view.Ministry != "" {
		meta = append(meta, view.Ministry)
	}
	if view.Published != "" {
		meta = append(meta, view.Published)
	}
	if view.PageCount > 0 {
		meta = append(meta, fmt.Sprintf("%d pages", view.PageCount))
	}
	if len(meta) > 0 {
		fmt.Printf("%s\n", strings.Join(meta, " | "))
	}
	fmt.Println()

	if view.BodyMode == session.BodyPDF {
		fmt.Printf("Source file: %s\n\n", view.PDFURL)
	}
	fmt.Printf("%s\n\n", view.Summary)

	if len(view.KeyPoints) > 0 {
		fmt.Println("Key points:")
		for _, kp := range view.KeyPoints {
			fmt.Printf("  - %s\n", kp)
		}
		fmt.Println()
	}

	for _, phase := range view.Phases {
		fmt.Printf("%s\n  %s\n", phase.Title, phase.Summary)
		for _, kp := range phase.KeyPoints {
			fmt.Printf("  - %s\n", kp)
		}
		fmt.Println()
	}

	if view.Journey != "" {
		fmt.Printf("Legislative journey:\n  %s\n", view.Journey)
	}
}

// printResult writes a fact-check verdict banner to stdout.
func printResult(res *portal.FactCheckResult) {
	fmt.Printf("Verdict: %s (%d%% confidence)\n\n", res.Verdict.Label(), portal.ConfidencePercent(res.Confidence))
	if res.Explanation != "" {
		fmt.Printf("%s\n\n", res.Explanation)
	}
	if len(res.Evidence) > 0 {
		fmt.Println("Evidence:")
		for _, ev := range res.Evidence {
			stance := "supports"
			if !ev.SupportsClaim {
				stance = "contradicts"
			}
			fmt.Printf("  - [%s] %s: %q\n", stance, ev.DocumentTitle, ev.Quote)
		}
	}
}
