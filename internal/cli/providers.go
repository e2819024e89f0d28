package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/timeaxis/timeaxis/internal/models"
)

var (
	providerAddName    string
	providerAddModel   string
	providerAddAPIKey  string
	providerAddBaseURL string
)

func init() {
	rootCmd.AddCommand(providersCmd)
	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersAddCmd)
	providersCmd.AddCommand(providersRmCmd)
	providersCmd.AddCommand(providersUseCmd)

	providersAddCmd.Flags().StringVar(&providerAddName, "name", "", "display name")
	providersAddCmd.Flags().StringVar(&providerAddModel, "model", models.DefaultGeminiModel, "model id")
	providersAddCmd.Flags().StringVar(&providerAddAPIKey, "api-key", "", "API key")
	providersAddCmd.Flags().StringVar(&providerAddBaseURL, "base-url", "", "base URL for OpenAI compatible APIs (empty for native Gemini)")
	_ = providersAddCmd.MarkFlagRequired("name")
	_ = providersAddCmd.MarkFlagRequired("api-key")
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage AI providers",
	Long:  "List, add, remove, and select the AI providers used for enrichment and chat.",
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		st, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		providers, err := st.Providers.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list providers: %w", err)
		}
		activeID, err := st.Settings.ActiveProviderID(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMODEL\tBACKEND\tKEY\tACTIVE")
		for _, p := range providers {
			key := "-"
			if p.HasCredentials() {
				key = "set"
			}
			active := ""
			if p.ID == activeID {
				active = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Model(), p.Kind(), key, active)
		}
		return w.Flush()
	},
}

var providersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		st, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		provider := models.AIProvider{
			Name:    providerAddName,
			ModelID: providerAddModel,
			APIKey:  providerAddAPIKey,
			BaseURL: providerAddBaseURL,
		}
		if err := provider.Validate(); err != nil {
			return err
		}
		if err := st.Providers.Create(ctx, &provider); err != nil {
			return fmt.Errorf("failed to add provider: %w", err)
		}

		fmt.Printf("Added provider %s (%s, %s backend)\n", provider.ID, provider.Name, provider.Kind())
		return nil
	},
}

var providersRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a provider",
	Long:  "Remove a provider. When it was active, selection falls back to the first remaining provider.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		st, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := st.DeleteProvider(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to remove provider: %w", err)
		}
		fmt.Printf("Removed provider %s\n", args[0])
		return nil
	},
}

var providersUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Select the active provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		st, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		provider, err := st.Providers.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if err := st.Settings.SetActiveProviderID(ctx, provider.ID); err != nil {
			return err
		}
		fmt.Printf("Active provider: %s (%s)\n", provider.Name, provider.Model())
		return nil
	},
}
