package cli

import (
	"github.com/spf13/cobra"

	"github.com/Gitmaxd/ai-init/internal/installer"
)

func init() {
	addInstallFlags(addCmd)
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Scaffold into the current project without overwriting anything",
	Long: `Add the rules file, alias dotfiles and scaffold directories to an existing
project. Files that already exist are kept as they are; an existing
package.json is never replaced and the entries it lacks are listed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := installOptions(cmd)
		if err != nil {
			return err
		}

		res, err := installer.AddToExisting(cmd.Context(), opts)
		if res != nil {
			printResult(cmd.OutOrStdout(), res)
		}
		return err
	},
}
