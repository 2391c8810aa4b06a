package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	svcconfig "github.com/rpckit/svcconfig"
	"github.com/rpckit/svcconfig/clientchannel"
	"github.com/rpckit/svcconfig/messagesize"
	"github.com/rpckit/svcconfig/retry"
	"github.com/rpckit/svcconfig/yamlconv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newVetCommand() *cobra.Command {
	var (
		enableHedging  bool
		disableParsing bool
	)

	cmd := &cobra.Command{
		Use:   "vet [file]",
		Short: "Validate a service config document",
		Long: `Validate a JSON or YAML service config document. YAML input is
converted to JSON before validation, so field order and number
spellings are checked exactly as written. Reads stdin when the file
argument is "-" or omitted.`,
		Example: `  # Validate a JSON document
  svcconfig vet service_config.json

  # Validate a YAML document from stdin
  cat service_config.yaml | svcconfig vet --format yaml -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}
			format, _ := cmd.Flags().GetString("format")

			jsonText, err := loadDocument(path, format)
			if err != nil {
				log.Error().Err(err).Str("file", path).Msg("Failed to load document")
				return err
			}

			reg := svcconfig.NewRegistry()
			reg.MustRegister(clientchannel.NewParser())
			reg.MustRegister(messagesize.NewParser())
			reg.MustRegister(retry.NewParser())

			opts := svcconfig.Options{}
			if enableHedging {
				opts[retry.OptEnableHedging] = true
			}
			if disableParsing {
				opts[svcconfig.OptDisableParsing] = true
			}

			if _, err := svcconfig.Create(reg, opts, jsonText); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
				return err
			}
			log.Info().Str("file", path).Msg("Service config is valid")
			return nil
		},
	}

	cmd.Flags().String("format", "", "input format: json or yaml (default: by file extension)")
	cmd.Flags().BoolVar(&enableHedging, "enable-hedging", false, "enable experimental hedging fields")
	cmd.Flags().BoolVar(&disableParsing, "disable-parsing", false, "check JSON well-formedness only")

	return cmd
}

// loadDocument reads path (stdin for "-") and returns JSON text. YAML input
// is converted through the value model so the JSON handed to validation
// keeps the document's key order and number spellings.
func loadDocument(path, format string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}

	if format == "" {
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	switch format {
	case "json":
		return string(data), nil
	case "yaml":
		v, err := yamlconv.ValueFromYAML(data)
		if err != nil {
			return "", fmt.Errorf("parsing YAML: %w", err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
