package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/moamenhredeen/oagent/internal/agent"
	"github.com/moamenhredeen/oagent/internal/trace"
)

var (
	askFlags    callFlags
	traceFile   string
	traceFormat string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [openapi-spec] [request...]",
	Short: "Answer a single request against the API",
	Long: `Route one natural-language request to an operation from the OpenAPI
specification, execute the call, and print the answer.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		specSource := args[0]
		request := strings.Join(args[1:], " ")

		a, err := newAgent(specSource, askFlags, printEvent)
		if err != nil {
			return err
		}

		outcome, err := a.Ask(cmd.Context(), request)

		// A failed run can still carry a trace of calls that executed.
		if traceFile != "" && outcome != nil && outcome.Trace != nil {
			if exportErr := trace.Export(outcome.Trace, trace.Format(traceFormat), traceFile); exportErr != nil && err == nil {
				return fmt.Errorf("failed to export trace: %w", exportErr)
			}
		}
		if err != nil {
			return err
		}

		fmt.Println(outcome.Answer)
		return nil
	},
}

// printEvent reports agent progress on stderr so stdout stays clean
// for the answer.
func printEvent(event agent.Event) {
	dim := color.New(color.Faint)
	switch event.Type {
	case agent.EventRouted:
		dim.Fprintf(os.Stderr, "→ %s %s\n", event.Method, event.Path)
	case agent.EventCallCompleted:
		status := color.GreenString("%d", event.Result.StatusCode)
		if !event.Result.OK() {
			status = color.RedString("%d", event.Result.StatusCode)
		}
		dim.Fprintf(os.Stderr, "← %s %s (%s, %v)\n",
			event.Method, event.Path, status, event.Result.Duration)
	}
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askFlags.server, "server", "", "override server URL from the OpenAPI spec")
	askCmd.Flags().StringVar(&askFlags.provider, "provider", "", "LLM provider (openai, anthropic, googleai)")
	askCmd.Flags().StringVar(&askFlags.model, "model", "", "model name")
	askCmd.Flags().StringVar(&askFlags.authEnv, "auth-env", "", "environment variable holding the bearer token")
	askCmd.Flags().DurationVar(&askFlags.timeout, "timeout", 0, "per-request timeout")
	askCmd.Flags().Float64Var(&askFlags.rateLimit, "rate-limit", 0, "max API requests per second")
	askCmd.Flags().StringVar(&traceFile, "trace", "", "write the call trace to this file")
	askCmd.Flags().StringVar(&traceFormat, "trace-format", "json", "trace format (json, csv)")
}
