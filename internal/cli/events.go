package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/timeaxis/timeaxis/internal/models"
)

var (
	eventsListAll bool

	eventAddYear    float64
	eventAddTrack   string
	eventAddTitle   string
	eventAddTitleZH string
	eventAddTags    []string
)

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsAddCmd)
	eventsCmd.AddCommand(eventsRmCmd)

	eventsListCmd.Flags().BoolVar(&eventsListAll, "all", false, "include built-in events")

	eventsAddCmd.Flags().Float64Var(&eventAddYear, "year", 0, "calendar year (negative for BCE)")
	eventsAddCmd.Flags().StringVar(&eventAddTrack, "track", string(models.TrackWorld), "track (China, World)")
	eventsAddCmd.Flags().StringVar(&eventAddTitle, "title", "", "English title")
	eventsAddCmd.Flags().StringVar(&eventAddTitleZH, "title-zh", "", "Chinese title")
	eventsAddCmd.Flags().StringSliceVar(&eventAddTags, "tags", nil, "comma separated tags")
	_ = eventsAddCmd.MarkFlagRequired("year")
	_ = eventsAddCmd.MarkFlagRequired("title")
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage custom events",
	Long:  "List, add, and remove custom timeline events.",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	Long:  "List custom events, or the full merged timeline with --all.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		st, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		var events []models.HistoricalEvent
		if eventsListAll {
			events, err = st.AllEvents(ctx)
		} else {
			events, err = st.Events.List(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No custom events added yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tYEAR\tTRACK\tTITLE\tTAGS")
		for _, e := range events {
			id := e.ID
			if !e.IsCustom {
				id = "(built-in)"
			}
			fmt.Fprintf(w, "%s\t%.0f\t%s\t%s\t%s\n", id, e.Year, e.Track, e.Title, strings.Join(e.Tags, ","))
		}
		return w.Flush()
	},
}

var eventsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom event",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		track := models.Track(eventAddTrack)
		if !models.ValidTrack(track) {
			return fmt.Errorf("invalid track %q (use China or World)", eventAddTrack)
		}

		st, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		event, err := st.AddCustomEvent(ctx, models.ProposedEvent{
			Year:    eventAddYear,
			Track:   track,
			Title:   eventAddTitle,
			TitleZH: eventAddTitleZH,
			Tags:    eventAddTags,
		}, models.SourceManual)
		if err != nil {
			return fmt.Errorf("failed to add event: %w", err)
		}

		fmt.Printf("Added event %s (%s, %.0f)\n", event.ID, event.Title, event.Year)
		return nil
	},
}

var eventsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a custom event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		st, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := st.Events.Delete(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to remove event: %w", err)
		}
		fmt.Printf("Removed event %s\n", args[0])
		return nil
	},
}
