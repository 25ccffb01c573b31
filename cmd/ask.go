package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"govlens/internal/portal"
	"govlens/internal/qa"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about a document",
	Long: `Sends a question to the portal's retrieval backend, scoped to a document
when one is given with --doc. Without a question argument (or with -i)
an interactive chat session starts. When the backend is unreachable the
answer is computed offline from the loaded document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("doc", "", "document id to scope the question to (empty = search all documents)")
	askCmd.Flags().BoolP("interactive", "i", false, "start an interactive chat session")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	docID, _ := cmd.Flags().GetString("doc")
	interactive, _ := cmd.Flags().GetBool("interactive")

	env, err := newPortalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	if docID != "" {
		if _, err := env.session.LoadDocument(ctx, docID); err != nil {
			return err
		}
	}

	orch := qa.New(env.client, env.session)

	if interactive || len(args) == 0 {
		return chatLoop(ctx, orch)
	}

	return askOnce(ctx, orch, args[0])
}

func askOnce(ctx context.Context, orch *qa.Orchestrator, question string) error {
	var msg *portal.ChatMessage
	err := withSpinner("Thinking", func() error {
		var inner error
		msg, inner = orch.Ask(ctx, question)
		return inner
	})
	if err != nil {
		return err
	}
	if msg == nil {
		return nil
	}
	printMessage(msg)
	return nil
}

// chatLoop runs the interactive transcript until the user types exit or
// interrupts the prompt.
func chatLoop(ctx context.Context, orch *qa.Orchestrator) error {
	fmt.Println("Ask questions about the loaded document. Type \"exit\" to quit.")
	for {
		p := promptui.Prompt{Label: "You"}
		question, err := p.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return fmt.Errorf("reading question: %w", err)
		}
		if strings.EqualFold(strings.TrimSpace(question), "exit") {
			return nil
		}

		if err := askOnce(ctx, orch, question); err != nil {
			return err
		}
	}
}

func printMessage(msg *portal.ChatMessage) {
	fmt.Printf("\n%s\n", msg.Text)
	if len(msg.Citations) > 0 {
		fmt.Println("\nSources:")
		for _, c := range msg.Citations {
			label := c.Section
			if label == "" && c.Page > 0 {
				label = fmt.Sprintf("page %d", c.Page)
			}
			if label == "" {
				label = "document"
			}
			fmt.Printf("  - %s: %q\n", label, c.Text)
		}
	}
	fmt.Println()
}
