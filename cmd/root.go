package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizforge/internal/config"
	"github.com/abhisek/quizforge/internal/engine"
	"github.com/abhisek/quizforge/internal/llm"
	"github.com/abhisek/quizforge/internal/questiongen"
	"github.com/abhisek/quizforge/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizforge",
	Short: "Adaptive quiz engine",
	Long:  "Quizforge: adaptive assessment engine with difficulty recommendations and offline-capable question loading.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZFORGE_DB env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then QUIZFORGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the sqlite store for the command invocation.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openEngine builds the engine over the store. The LLM question
// generator is wired in as a fallback source when an API key is
// discoverable; without one the stored pool is the only source.
func openEngine(cmd *cobra.Command, st *store.Store) *engine.Engine {
	deps := engine.Deps{
		Questions: st.Questions(),
		Attempts:  st.Attempts(),
		Runner:    st,
		KV:        st.KV(),
	}

	if llmCfg, ok := llm.DiscoverConfig(); ok {
		provider, err := llm.NewProvider(llmCfg)
		if err == nil {
			gen := questiongen.New(provider, questiongen.DefaultConfig())
			deps.Fallback = questiongen.NewSource(gen, st.Questions())
		}
	}

	return engine.New(config.FromEnv(), deps)
}
