package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Gitmaxd/ai-init/internal/config"
	"github.com/Gitmaxd/ai-init/internal/doctor"
	"github.com/Gitmaxd/ai-init/internal/templates"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing directories, rules.yaml and aliases")
	rootCmd.AddCommand(doctorCmd)
}

var errUnhealthy = errors.New("project needs attention (run doctor --fix)")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the scaffolding of the current project",
	Long: `Verify the scaffold directories exist, rules.yaml is present and valid and
not older than the built-in template, and every alias resolves to rules.yaml.
With --fix, missing pieces are created; existing files are never changed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := workDir()
		if err != nil {
			return err
		}

		opts := doctor.Options{Fix: doctorFix}
		if dir := config.Current().TemplateDir; dir != "" {
			if opts.Template, err = templates.FromDir(dir); err != nil {
				return err
			}
		}

		report, err := doctor.Run(wd, opts)
		if err != nil {
			return err
		}
		printDoctor(cmd.OutOrStdout(), report)
		if !report.Healthy() {
			return errUnhealthy
		}
		return nil
	},
}
