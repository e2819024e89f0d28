package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/timeaxis/timeaxis/internal/ai"
	"github.com/timeaxis/timeaxis/internal/models"
)

var generateLang string

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&generateLang, "lang", "en", "output language (en, zh)")
}

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate events with AI",
	Long: `Ask the active AI provider to generate timeline events for a topic and
store them as custom events. Events whose title matches an existing one are
skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		provider, err := st.ActiveProvider(ctx)
		if err != nil {
			return err
		}
		if provider == nil || !provider.HasCredentials() {
			return fmt.Errorf("no active AI provider with an API key; run 'timeaxis providers add'")
		}

		svc := ai.NewService(GetConfig().AI.RequestTimeout)
		proposed, err := svc.GenerateEvents(ctx, args[0], generateLang, *provider)
		if err != nil {
			return fmt.Errorf("failed to generate events: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "YEAR\tTRACK\tTITLE\tSTATUS")
		added := 0
		for _, p := range proposed {
			stored, err := st.AddCustomEvent(ctx, p, models.SourceAISearch)
			if err != nil {
				return err
			}
			status := "added"
			if stored == nil {
				status = "duplicate, skipped"
			} else {
				added++
			}
			fmt.Fprintf(w, "%.0f\t%s\t%s\t%s\n", p.Year, p.Track, p.Title, status)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d of %d events stored\n", added, len(proposed))
		return nil
	},
}
