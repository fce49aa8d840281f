package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alevsk/oscal-ops/internal/importer"
	"github.com/alevsk/oscal-ops/internal/logger"
)

var (
	importFile   string
	importOutput string
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import -f <file> -o <name>",
	Short: "Import a compliance document into the workspace",
	Long: `Import reads a compliance document from a JSON or YAML file, classifies it
by its root key, and stores it under the matching kind directory of the
current workspace.

Examples:
  # Import a catalog
  oscal-ops import -f ~/Downloads/nist-catalog.json -o mycatalog

  # Import a profile written in YAML
  oscal-ops import -f ./baseline.yaml -o baseline`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if importFile == "" {
			return fmt.Errorf("%w: flag --file is required", errUsage)
		}
		if importOutput == "" {
			return fmt.Errorf("%w: flag --output is required", errUsage)
		}

		result, err := importer.Import(cmd.Context(), importer.Request{
			SourcePath: importFile,
			OutputName: importOutput,
		})
		if err != nil {
			if errors.Is(err, importer.ErrInvalidRequest) {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			stage := importer.FailureStage(err)
			logger.Error().Err(err).Str("stage", string(stage)).Str("source", importFile).Msg("import failed")
			return fmt.Errorf("import failed in %s stage: %w", stage, err)
		}

		fmt.Printf("Imported %s as %s %s (%s)\n", importFile, result.Kind, result.Name, result.Path)
		return nil
	},
}

func init() {
	// Add flags specific to import command
	flags := importCmd.Flags()
	flags.StringVarP(&importFile, "file", "f", "", "path of the document to import")
	flags.StringVarP(&importOutput, "output", "o", "", "name the document is stored under")
}
