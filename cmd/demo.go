package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"govlens/internal/fixture"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a local demo backend over the bundled document set",
	Long: `Serves the bundled demo documents over the full portal REST API —
documents, timelines, Q&A, fact-checking, and tagged translations —
so the client can be pointed at http://localhost:<port>/api with no
real backend. Answers and verdicts come from the same deterministic
rule tables used for offline fallback.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().Int("port", 0, "port to listen on (default: demo_port from config)")
	demoCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.DemoPort
	}
	allowAll, _ := cmd.Flags().GetBool("allow-all-origins")

	srv := fixture.NewServer(fixture.ServerConfig{Port: port, AllowAll: allowAll})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	fmt.Printf("Demo backend running at http://localhost:%d\n", port)
	fmt.Println("Point govlens at it with GOVLENS_API_BASE_URL or api_base_url in .govlens.yml.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
