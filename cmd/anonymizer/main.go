// anonymizer replaces sensitive header and cookie values of HTTP requests
// with model-generated look-alikes. It runs as an HTTP service, a one-shot
// CLI, or an MCP stdio tool server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/anonymizer/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

var configDir string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "anonymizer",
		Short:         "Anonymize sensitive HTTP headers and cookies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")

	root.AddCommand(serveCmd, runCmd, mcpCmd, historyCmd, versionCmd)
	return root
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the anonymizer version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", version.AppName, version.GitCommit)
	},
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
