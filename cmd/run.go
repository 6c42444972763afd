package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/radarsat1/re-up/internal/app"
	"github.com/radarsat1/re-up/internal/llm"
	"github.com/radarsat1/re-up/internal/session"
	"github.com/radarsat1/re-up/internal/studygen"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set an API key (e.g. GEMINI_API_KEY) to enable plan generation and grading.")
		return err
	}

	gen := studygen.New(provider, studygen.DefaultConfig())
	engine := session.NewEngine(st.KV(), gen)

	return app.Run(st.KV(), engine)
}
