package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"govlens/internal/factcheck"
	"govlens/internal/store"
)

var factcheckCmd = &cobra.Command{
	Use:   "factcheck [claim]",
	Short: "Verify a claim or URL against official documents",
	Long: `Checks a free-text claim, or with --url the content behind a link
(news article, YouTube, Twitter/X, Instagram, Facebook), against the
portal's document index. When the backend is unreachable a deterministic
offline verdict is computed from the bundled rule table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFactCheck,
}

var factcheckHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent fact checks",
	RunE:  runFactCheckHistory,
}

func init() {
	factcheckCmd.Flags().String("url", "", "URL to fact-check instead of a claim")
	factcheckCmd.Flags().String("context", "", "additional context or the specific claim to check (URL mode)")
	factcheckCmd.AddCommand(factcheckHistoryCmd)
	rootCmd.AddCommand(factcheckCmd)
}

func runFactCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	urlArg, _ := cmd.Flags().GetString("url")
	contextArg, _ := cmd.Flags().GetString("context")

	if urlArg == "" && len(args) == 0 {
		return fmt.Errorf("provide a claim to check, or --url for a link")
	}

	env, err := newPortalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	var history factcheck.History
	if env.state != nil {
		history = env.state
	}
	checker := factcheck.New(env.client, history, env.session.Language())

	if urlArg != "" {
		return checkURL(ctx, checker, urlArg, contextArg)
	}
	return checkClaim(ctx, checker, args[0])
}

func checkClaim(ctx context.Context, checker *factcheck.Checker, claim string) error {
	var outcome *factcheck.Outcome
	err := withSpinner("Checking claim", func() error {
		var inner error
		outcome, inner = checker.CheckClaim(ctx, claim)
		return inner
	})
	if err != nil {
		var verr *factcheck.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s", verr.Message)
		}
		return err
	}

	printResult(&outcome.Result)
	if outcome.Source == store.SourceFallback {
		fmt.Println("\n(Offline verdict: the fact-check service was unreachable.)")
	}
	return nil
}

func checkURL(ctx context.Context, checker *factcheck.Checker, rawURL, additionalContext string) error {
	var outcome *factcheck.URLOutcome
	err := withSpinner("Checking URL", func() error {
		var inner error
		outcome, inner = checker.CheckURL(ctx, rawURL, additionalContext)
		return inner
	})
	if err != nil {
		var verr *factcheck.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s", verr.Message)
		}
		return err
	}

	switch outcome.State {
	case factcheck.URLNotRelated:
		fmt.Printf("Not government related (%s", outcome.SourceType)
		if outcome.Title != "" {
			fmt.Printf(": %q", outcome.Title)
		}
		fmt.Println(")")
		if outcome.Message != "" {
			fmt.Printf("\n%s\n", outcome.Message)
		}
	case factcheck.URLNoResult:
		printResult(outcome.Result)
	default:
		if outcome.Title != "" {
			fmt.Printf("Source: %s (%s)\n\n", outcome.Title, outcome.SourceType)
		}
		printResult(outcome.Result)
		if outcome.Source == store.SourceFallback {
			fmt.Println("\n(Offline verdict: the fact-check service was unreachable.)")
		}
	}
	return nil
}

func runFactCheckHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	env, err := newPortalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	if env.state == nil {
		return fmt.Errorf("state store unavailable; no history to show")
	}

	entries, err := env.state.RecentFactChecks(ctx, 20)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No fact checks recorded yet.")
		return nil
	}

	for _, e := range entries {
		input := e.Input
		if len(input) > 60 {
			input = input[:60] + "..."
		}
		fmt.Printf("%s  %-5s  %-14s  %s\n",
			e.CheckedAt.Format("2006-01-02 15:04"), e.Kind, strings.ToUpper(e.Verdict), input)
	}
	return nil
}
