package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/anonymizer/pkg/anonymizer"
)

var runFlags struct {
	file      string
	threshold int
	userID    string
	debug     bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Anonymize one request read from a JSON file and print the result",
	Long: `Reads a JSON document of the form {"request": {"headers": [...], "cookies": [...]}}
from --file (or stdin when --file is "-") and prints the anonymized headers and cookies.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := readRunInput(cmd.InOrStdin(), runFlags.file)
		if err != nil {
			return err
		}

		a, err := bootstrap(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		defer a.close()

		opts := anonymizer.Options{UserID: runFlags.userID, Debug: runFlags.debug}
		if cmd.Flags().Changed("filter-values-over-length") {
			opts.FilterValuesOverLength = &runFlags.threshold
		}

		clean, err := a.service.CleanHeadersCookies(cmd.Context(), req, opts)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), clean)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.file, "file", "f", "request.json", `JSON file holding {"request": {...}}, "-" for stdin`)
	runCmd.Flags().IntVar(&runFlags.threshold, "filter-values-over-length", 0, "Override the configured value-length cutoff")
	runCmd.Flags().StringVar(&runFlags.userID, "user-id", "", "Caller identity forwarded to the model provider")
	runCmd.Flags().BoolVar(&runFlags.debug, "debug", false, "Log prompts and raw model replies")
}

// readRunInput decodes {"request": {...}} from path, or from stdin for "-".
func readRunInput(stdin io.Reader, path string) (anonymizer.Request, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return anonymizer.Request{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var doc struct {
		Request *anonymizer.Request `json:"request"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return anonymizer.Request{}, fmt.Errorf("failed to parse input: %w", err)
	}
	if doc.Request == nil {
		return anonymizer.Request{}, fmt.Errorf("input has no \"request\" object")
	}
	return *doc.Request, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
