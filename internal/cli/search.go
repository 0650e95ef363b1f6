package cli

import (
	"context"
	"fmt"

	"github.com/dialdish/dialdish/internal/models"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the knowledge base without LLM synthesis",
	Long: `Search the service knowledge base (FAQs, pricing plans, knowledge items,
features and success stories) and print the spoken reply with the ranked
matches behind it.

Use 'ask' for LLM-augmented answers when the knowledge base has no match.

Examples:
  dialdish search "how much does the professional plan cost"
  dialdish search "how long does setup take"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := context.Background()

	voice, err := getVoice(false)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	out := voice.Search(ctx, query)
	fmt.Println(defaultTheme.assistantStyle().Render(out.Reply))

	if len(out.Result.Matches) == 0 {
		fmt.Println(defaultTheme.hintStyle().Render("\nNo knowledge base matches."))
		return nil
	}

	fmt.Printf("\nMatches (best confidence %d):\n\n", out.Result.Confidence)
	for i, m := range out.Result.Matches {
		fmt.Printf("%d. [%s] confidence %d\n", i+1, m.Source, m.Confidence)
		if verbose {
			fmt.Printf("   %s\n", matchSummary(m))
		}
	}
	return nil
}

// matchSummary names the matched record for verbose output.
func matchSummary(m models.Match) string {
	switch m.Source {
	case models.SourceFAQ:
		return m.FAQ.Question
	case models.SourcePricing:
		if len(m.Plans) == 1 {
			return m.Plans[0].Name
		}
		return fmt.Sprintf("%d pricing plans", len(m.Plans))
	case models.SourceKnowledgeItem:
		return m.Item.Title
	case models.SourceFeatures:
		return fmt.Sprintf("%d service features", len(m.Features))
	case models.SourceStories:
		if len(m.Stories) > 0 {
			return m.Stories[0].RestaurantName
		}
		return "success stories"
	default:
		return m.Query
	}
}
