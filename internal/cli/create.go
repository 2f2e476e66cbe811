package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Gitmaxd/ai-init/internal/branding"
	"github.com/Gitmaxd/ai-init/internal/installer"
)

func init() {
	addInstallFlags(createCmd)
	rootCmd.AddCommand(createCmd)
}

// decisionScript is scaffolded without the exec bit, so it is run through sh.
const decisionScript = "scripts/new-decision.sh"

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new project directory",
	Long: `Create <name> in the current directory and scaffold it. The directory may
already exist only if it is empty.

Examples:
  ` + branding.CLIName() + ` create my-service
  ` + branding.CLIName() + ` create my-service --skip-aliases`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := installOptions(cmd)
		if err != nil {
			return err
		}

		res, err := installer.CreateNew(cmd.Context(), args[0], opts)
		if res != nil {
			printResult(cmd.OutOrStdout(), res)
		}
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(opts.WorkDir, res.Root)
		if relErr != nil {
			rel = res.Root
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nNext: cd %s and fill in memory-bank/projectbrief.md\n", rel)
		fmt.Fprintf(cmd.OutOrStdout(), "Record decisions with: sh %s \"Title\"\n", decisionScript)
		return nil
	},
}
