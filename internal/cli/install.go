package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gitmaxd/ai-init/internal/config"
	"github.com/Gitmaxd/ai-init/internal/installer"
	"github.com/Gitmaxd/ai-init/internal/output"
	"github.com/Gitmaxd/ai-init/internal/templates"
)

// addInstallFlags registers the flags shared by create and add. Values are
// read back through config so the file and environment supply defaults.
func addInstallFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("skip-aliases", false, "Do not create the assistant alias dotfiles")
	cmd.Flags().String("template-dir", "", "Scaffold from this directory instead of the built-in templates")
	cmd.Flags().Int("concurrency", 0, "Maximum parallel file copies (0 = default)")
}

func bindInstallFlags(cmd *cobra.Command) error {
	for key, flag := range map[string]string{
		config.KeySkipAliases: "skip-aliases",
		config.KeyTemplateDir: "template-dir",
		config.KeyConcurrency: "concurrency",
	} {
		if err := config.BindFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

// installOptions resolves settings into installer options for cmd.
func installOptions(cmd *cobra.Command) (installer.Options, error) {
	if err := bindInstallFlags(cmd); err != nil {
		return installer.Options{}, err
	}
	wd, err := workDir()
	if err != nil {
		return installer.Options{}, err
	}

	s := config.Current()
	opts := installer.Options{
		WorkDir:          wd,
		SkipAliasLinking: s.SkipAliases,
		Verbose:          s.Verbose,
		Logger:           output.New(cmd.ErrOrStderr(), s.Verbose),
		Concurrency:      s.Concurrency,
	}
	if s.TemplateDir != "" {
		root, err := templates.FromDir(s.TemplateDir)
		if err != nil {
			return installer.Options{}, fmt.Errorf("resolving template directory: %w", err)
		}
		opts.Template = root
	}
	return opts, nil
}
