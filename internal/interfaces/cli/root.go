package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/ChemPatent-Insight/internal/config"
)

var cfgFile string

// NewRootCommand builds the chempatent command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "chempatent",
		Short: "Chemical patent analysis pipeline",
		Long: `ChemPatent-Insight analyses chemical patent PDFs: it recognises
molecular formulas, converts structure depictions to SMILES line notation,
and extracts bibliographic patent elements into a graded report.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file")
	root.AddCommand(newServeCommand(), newAnalyzeCommand(), newVersionCommand())
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig reads the file given via --config, or falls back to environment
// variables alone when no file was named.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.LoadFromEnv()
	}
	return config.Load(cfgFile)
}
