package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/fmeaskema/config"
	"github.com/reoring/fmeaskema/contracts"
	"github.com/reoring/fmeaskema/observe"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type validateOpts struct {
	model      string
	format     string
	configPath string
	quiet      bool
}

func newValidateCmd() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Validate a document against a contract model",
		Long: `Validate parses one JSON or YAML document with the model named by --model.
On success the normalized JSON is printed. On failure an issue report is
printed and the command exits non-zero.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "model key (see 'fmeaskema models')")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "input format: json or yaml (default: from file extension, else json)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML or TOML config file")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the normalized document")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, opts validateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	m, ok := contracts.Lookup(opts.model)
	if !ok {
		return fmt.Errorf("unknown model %q (known: %s)", opts.model, strings.Join(contracts.Keys(), ", "))
	}

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
		logger.Debug("loaded config", "path", opts.configPath)
	}
	cfg.Apply()
	logger.SetLevel(min(logger.GetLevel(), cfg.Level()))

	vopts, err := cfg.ValidatorOptions()
	if err != nil {
		return err
	}
	vopts.Observer = observe.NewMultiObserver(vopts.Observer, observe.NewLogObserver(logger))
	v := contracts.NewValidator(vopts)

	format, err := resolveFormat(opts.format, path)
	if err != nil {
		return err
	}
	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	var res contracts.Result[any]
	switch format {
	case formatYAML:
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decode yaml: %w", err)
		}
		res, err = v.ValidateAnyValue(ctx, m, raw)
	default:
		res, err = v.ValidateAny(ctx, m, data)
	}

	stderr := cmd.ErrOrStderr()
	for _, w := range res.Warnings {
		fmt.Fprint(stderr, renderWarning(w))
	}
	if err != nil {
		var ve *contracts.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderReport(ve))
		return ErrValidationFailed
	}

	fmt.Fprint(stderr, renderSuccess(m.Name(), len(res.Warnings)))
	if opts.quiet {
		return nil
	}
	out, err := json.MarshalIndent(res.Value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func resolveFormat(flag, path string) (string, error) {
	switch strings.ToLower(flag) {
	case formatJSON, formatYAML:
		return strings.ToLower(flag), nil
	case "":
	default:
		return "", fmt.Errorf("unsupported format %q (json, yaml)", flag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return formatJSON, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
