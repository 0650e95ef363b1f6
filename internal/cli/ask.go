package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question, falling back to the LLM when needed",
	Long: `Answer a question the way the phone assistant would: knowledge base first,
then the configured LLM when nothing matches.

Requires DIALDISH_LLM_PROVIDER to be set for the fallback; without it this
behaves like 'search' with a fixed redirect reply on misses.

Examples:
  dialdish ask "do you integrate with my POS system"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx := context.Background()

	voice, err := getVoice(true)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	reply, ok := voice.Answer(ctx, question)
	if !ok {
		out := voice.Search(ctx, question)
		fmt.Println(defaultTheme.assistantStyle().Render(out.Reply))
		fmt.Println(defaultTheme.hintStyle().Render("\n(no knowledge base match, no LLM answer)"))
		return nil
	}

	fmt.Println(defaultTheme.assistantStyle().Render(reply))
	return nil
}
