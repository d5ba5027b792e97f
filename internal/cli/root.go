package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// BuildInfo is stamped into the binary with -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var rootCmd = &cobra.Command{
	Use:   "cbtnote",
	Short: "CBT notebook - thought records, PGA goals and model feedback",
	Long: `cbtnote keeps CBT thought records and positive goals in memory and
asks a Gemini model for balanced thoughts and pattern analysis.

Configuration comes from .cbtnote.yaml, .env and CBTNOTE_* variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), goversion.FuncWithOutput(shortened, info.Version, info.Commit, info.Date, output))
		},
	}
	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")
	return cmd
}

// Execute runs the root command.
func Execute(info BuildInfo) error {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiKeyCmd)
	rootCmd.AddCommand(samplesCmd)
	rootCmd.AddCommand(newVersionCmd(info))

	rootCmd.Version = info.Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
