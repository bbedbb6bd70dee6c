package main

import (
	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/anonymizer/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the anonymize_request tool over MCP stdio",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		defer a.close()

		return mcp.NewServer(a.service).ServeStdio()
	},
}
