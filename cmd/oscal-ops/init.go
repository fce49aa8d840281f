package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alevsk/oscal-ops/internal/workspace"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a workspace",
	Long: `Init creates the workspace marker and one directory per model kind so that
documents can be imported. With no argument the current directory becomes the
workspace root.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		meta, err := workspace.Init(dir)
		if err != nil {
			return err
		}

		root, err := filepath.Abs(dir)
		if err != nil {
			root = dir
		}
		fmt.Printf("Initialized workspace %s at %s\n", meta.UUID, root)
		return nil
	},
}
