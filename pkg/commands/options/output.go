package options

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.Flags().StringVarP(&po.Output, "output", "o", "",
		"Output format. One of 'json' or 'yaml'; pretty printed when unset.")
}

// Structured reports whether output should be machine readable.
func (o *OutputOptions) Structured() bool {
	return o != nil && (o.JSON || o.Output != "")
}

// Print writes v as JSON or YAML when requested, otherwise calls pretty.
func (o *OutputOptions) Print(v any, pretty func()) error {
	if o == nil {
		pretty()
		return nil
	}
	format := strings.ToLower(strings.TrimSpace(o.Output))
	if o.JSON {
		format = "json"
	}
	switch format {
	case "":
		pretty()
		return nil
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(color.Output, string(b))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected json or yaml)", o.Output)
	}
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
