package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"govlens/internal/export"
	"govlens/internal/portal"
	"govlens/internal/session"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Browse the policy document catalog",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available documents",
	RunE:  runDocsList,
}

var docsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a document's article view",
	Long: `Loads and renders a document: summary, key points, the before/change/
result timeline, and the legislative journey. With no id the default
demo document is shown. If the backend is unreachable the bundled demo
data is used instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocsShow,
}

var docsExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a document's article view as a standalone HTML page",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDocsExport,
}

func init() {
	docsListCmd.Flags().Int("page", 1, "page number")
	docsListCmd.Flags().String("category", "", "filter by category: bill, act, notification, report, judgment, policy")
	docsListCmd.Flags().Bool("json", false, "output as JSON")
	docsExportCmd.Flags().StringP("output", "o", "document.html", "output file path")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsShowCmd)
	docsCmd.AddCommand(docsExportCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	page, _ := cmd.Flags().GetInt("page")
	category, _ := cmd.Flags().GetString("category")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	env, err := newPortalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	var list *portal.DocumentList
	err = withSpinner("Loading documents", func() error {
		var inner error
		list, inner = env.session.ListDocuments(ctx, page, portal.Category(category))
		return inner
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	if len(list.Documents) == 0 {
		fmt.Println("No documents found.")
		return nil
	}
	fmt.Printf("%d documents (page %d):\n\n", list.Total, list.Page)
	for _, doc := range list.Documents {
		fmt.Printf("  %s  [%s] %s\n", doc.ID, doc.Category, doc.Title)
		if doc.SourceMinistry != "" {
			fmt.Printf("      %s\n", doc.SourceMinistry)
		}
	}
	return nil
}

func runDocsShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	env, err := newPortalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	var view *session.DocumentView
	err = withSpinner("Loading document", func() error {
		var inner error
		view, inner = env.session.LoadDocument(ctx, id)
		return inner
	})
	if err != nil {
		return err
	}

	printView(view)
	return nil
}

func runDocsExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	output, _ := cmd.Flags().GetString("output")

	env, err := newPortalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	view, err := env.session.LoadDocument(ctx, id)
	if err != nil {
		return err
	}

	page, err := export.HTML(view)
	if err != nil {
		return fmt.Errorf("exporting document: %w", err)
	}
	if err := os.WriteFile(output, page, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Printf("Exported %q to %s\n", view.Title, output)
	return nil
}
