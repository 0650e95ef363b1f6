package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo restaurant and knowledge base fixtures",
	Long: `Load the demo restaurant (menus, hours) and a small service knowledge base
into SurrealDB. Safe to run repeatedly: the demo records are replaced, other
data is left alone.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := dbClient.SeedDemoData(ctx); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	fmt.Println(defaultTheme.successStyle().Render("✓ Demo data seeded"))
	fmt.Println(defaultTheme.hintStyle().Render("Try: dialdish call --restaurant demo"))
	return nil
}
