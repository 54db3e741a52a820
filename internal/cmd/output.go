package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutputFormat(cmd *cobra.Command) error {
	switch outputFormat(cmd) {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use text, json or yaml)", outputFormat(cmd))
	}
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		return outputText
	}
	return format
}

// render writes v as JSON or YAML, or calls text for the default format.
// YAML keys follow the JSON field names.
func render(cmd *cobra.Command, v interface{}, text func(w io.Writer) error) error {
	out := cmd.OutOrStdout()

	switch outputFormat(cmd) {
	case outputJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case outputYAML:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic interface{}
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(generic); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return text(out)
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func money(amount float64) string {
	return fmt.Sprintf("$ %.2f", amount)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
