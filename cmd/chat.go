package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/moamenhredeen/oagent/internal/agent"
)

var chatFlags callFlags

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [openapi-spec]",
	Short: "Start an interactive session against the API",
	Long: `Start a conversational session over the OpenAPI specification.
Every message is routed to an API operation; follow-up messages see the
earlier exchanges. Exit with "exit", "quit", or Ctrl-D.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
			spinner.WithWriter(os.Stderr))

		a, err := newAgent(args[0], chatFlags, func(event agent.Event) {
			switch event.Type {
			case agent.EventRouted:
				spin.Suffix = fmt.Sprintf(" calling %s %s", event.Method, event.Path)
			case agent.EventCallCompleted:
				spin.Suffix = " thinking"
			}
		})
		if err != nil {
			return err
		}

		userLabel := color.New(color.FgCyan, color.Bold).SprintFunc()
		agentLabel := color.New(color.FgGreen, color.Bold).SprintFunc()

		fmt.Println("Connected. Tell me what you want to do (exit to quit).")

		session := a.NewSession()
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Printf("%s ", userLabel("you>"))
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}

			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			if text == "exit" || text == "quit" {
				return nil
			}

			spin.Suffix = " thinking"
			spin.Start()
			outcome, err := session.Send(cmd.Context(), text)
			spin.Stop()
			if err != nil {
				color.Red("error: %v", err)
				continue
			}

			fmt.Printf("%s %s\n", agentLabel("agent>"), outcome.Answer)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatFlags.server, "server", "", "override server URL from the OpenAPI spec")
	chatCmd.Flags().StringVar(&chatFlags.provider, "provider", "", "LLM provider (openai, anthropic, googleai)")
	chatCmd.Flags().StringVar(&chatFlags.model, "model", "", "model name")
	chatCmd.Flags().StringVar(&chatFlags.authEnv, "auth-env", "", "environment variable holding the bearer token")
	chatCmd.Flags().DurationVar(&chatFlags.timeout, "timeout", 0, "per-request timeout")
	chatCmd.Flags().Float64Var(&chatFlags.rateLimit, "rate-limit", 0, "max API requests per second")
}
