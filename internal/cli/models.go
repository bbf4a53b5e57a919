package cli

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/fmeaskema/contracts"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the registered contract models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			width := 0
			for _, k := range contracts.Keys() {
				width = max(width, len(k))
			}
			for _, m := range contracts.Registry() {
				pad := strings.Repeat(" ", width-len(m.Key()))
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s  %s\n", m.Key(), pad, styleDim.Render(m.Name()))
			}
			return nil
		},
	}
}

func newSchemaCmd() *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of a contract model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := contracts.Lookup(model)
			if !ok {
				return fmt.Errorf("unknown model %q (known: %s)", model, strings.Join(contracts.Keys(), ", "))
			}
			s, err := m.JSONSchema()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", "", "model key")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}
