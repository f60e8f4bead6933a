package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/moamenhredeen/oagent/internal/spec"
)

var (
	opsFilter string
	opsTags   []string
)

// operationsCmd represents the operations command
var operationsCmd = &cobra.Command{
	Use:     "operations [openapi-spec]",
	Aliases: []string{"ops"},
	Short:   "List the operations the agent can route to",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := spec.Load(args[0])
		if err != nil {
			return err
		}

		operations := filterOperations(catalog.Operations(), opsFilter, opsTags)
		if len(operations) == 0 {
			fmt.Println("No operations found matching the criteria")
			return nil
		}

		if title := catalog.Title(); title != "" {
			fmt.Printf("%s (%s)\n\n", color.New(color.Bold).Sprint(title), catalog.ServerURLs()[0])
		}

		methodColor := color.New(color.FgYellow).SprintfFunc()
		for _, op := range operations {
			line := fmt.Sprintf("%s %s", methodColor("%-7s", op.Method), op.Path)
			if op.Summary != "" {
				line += color.New(color.Faint).Sprintf("  %s", op.Summary)
			}
			if op.Deprecated {
				line += color.RedString("  (deprecated)")
			}
			fmt.Println(line)
		}
		return nil
	},
}

func filterOperations(operations []spec.Operation, filter string, tagFilters []string) []spec.Operation {
	var filtered []spec.Operation

	for _, op := range operations {
		if filter != "" {
			if !strings.Contains(op.Path, filter) && !strings.Contains(op.OperationID, filter) {
				continue
			}
		}

		if len(tagFilters) > 0 {
			found := false
			for _, filterTag := range tagFilters {
				for _, opTag := range op.Tags {
					if opTag == filterTag {
						found = true
						break
					}
				}
				if found {
					break
				}
			}
			if !found {
				continue
			}
		}

		filtered = append(filtered, op)
	}

	return filtered
}

func init() {
	rootCmd.AddCommand(operationsCmd)

	operationsCmd.Flags().StringVar(&opsFilter, "filter", "", "filter operations by path pattern or operation ID")
	operationsCmd.Flags().StringSliceVar(&opsTags, "tags", []string{}, "filter by OpenAPI tags (can be specified multiple times)")
}
