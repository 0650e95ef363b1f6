package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dialdish/dialdish/internal/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var callerPhone string

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Simulate a phone call on the terminal",
	Long: `Run an interactive ordering conversation against the live catalog. Each
line you type is treated as one caller utterance (a digit press or a spoken
phrase); the assistant's prompt is printed back.

The session lives in memory, so hanging up (Ctrl+D or 'hangup') discards it.

Examples:
  dialdish call
  dialdish call --restaurant demo --from "+91 98XXXXXX01"`,
	Args: cobra.NoArgs,
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVar(&callerPhone, "from", "", "caller phone number")
}

func runCall(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	voice, err := getVoice(true)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	callID := "cli-" + uuid.NewString()
	fmt.Println(defaultTheme.hintStyle().Render(
		"Simulated call started. Type your input and press enter; 'hangup' ends the call."))
	fmt.Println()

	// Empty first input fetches the greeting, like a webhook call start.
	turn, err := voice.HandleTurn(ctx, callID, restaurantID, callerPhone, "")
	if err != nil {
		return fmt.Errorf("start call: %w", err)
	}
	speak(turn.Prompt)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(defaultTheme.callerStyle().Render("you> "))
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "hangup" {
			break
		}

		turn, err = voice.HandleTurn(ctx, callID, restaurantID, callerPhone, input)
		if err != nil {
			fmt.Println(defaultTheme.errorStyle().Render(fmt.Sprintf("call error: %v", err)))
			continue
		}
		speak(turn.Prompt)

		if turn.Step == models.StepComplete {
			fmt.Println(defaultTheme.successStyle().Render("\nOrder placed. Call ended."))
			return nil
		}
	}

	fmt.Println(defaultTheme.hintStyle().Render("Call ended."))
	return scanner.Err()
}

func speak(prompt string) {
	fmt.Println(defaultTheme.assistantStyle().Render(wrapPrompt(prompt)))
	fmt.Println()
}

// wrapPrompt breaks a long spoken prompt into sentence-per-line output.
func wrapPrompt(prompt string) string {
	return strings.ReplaceAll(prompt, ". ", ".\n")
}
