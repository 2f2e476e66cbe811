package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Gitmaxd/ai-init/internal/branding"
	"github.com/Gitmaxd/ai-init/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verboseFlag bool
	dirFlag     string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Trace every file, directory and alias")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "C", "", "Run as if started in this directory")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds the shared assistant configuration for a project: a canonical
rules.yaml, the alias dotfiles each assistant reads, and the rules, decision
record, memory bank and scripts directories around them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		return config.BindFlag(config.KeyVerbose, cmd.Root().PersistentFlags().Lookup("verbose"))
	},
}

// Execute runs the root command with build info injected via ldflags and
// returns the process exit code.
func Execute(version, commit, date string) int {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err != nil {
		reportError(stderr, err, config.Current().Verbose)
	}
	return ExitCode(err)
}

// workDir resolves --dir, defaulting to the process working directory.
func workDir() (string, error) {
	if dirFlag != "" {
		return dirFlag, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return wd, nil
}
