package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alevsk/oscal-ops/internal/formatter"
	"github.com/alevsk/oscal-ops/internal/workspace"
)

var listOutput string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the documents stored in the workspace",
	Long: `List scans the current workspace and prints one row per stored document with
its kind, name, identifier, and title.

Examples:
  # Print the inventory as a table
  oscal-ops list

  # Print the inventory as JSON
  oscal-ops list -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := workspace.Find(".")
		if err != nil {
			return err
		}

		entries, err := workspace.Inventory(root)
		if err != nil {
			return err
		}

		format := listOutput
		if format == "" {
			format = cfg.Output.Format
		}
		ftype, err := formatter.ParseType(format)
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		f, err := formatter.NewFormatter(ftype)
		if err != nil {
			return err
		}

		out, err := f.Format(entries)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "output format (table, json, yaml, markdown)")
}
