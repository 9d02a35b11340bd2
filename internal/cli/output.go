package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// writeFormatted encodes v as indented JSON or as block YAML. The YAML form is built
// from the JSON encoding so key order and json tags carry over.
func writeFormatted(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	switch format {
	case formatJSON, "":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return fmt.Errorf("convert to yaml: %w", err)
		}
		plainStyle(&node)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// plainStyle drops the flow and quoting styles inherited from JSON. The encoder
// re-quotes strings that YAML 1.2 would read as another type, so only the YAML 1.1
// boolean words are kept double-quoted here.
func plainStyle(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" && yaml11Bool[strings.ToLower(n.Value)] {
		n.Style = yaml.DoubleQuotedStyle
	} else {
		n.Style = 0
	}
	for _, c := range n.Content {
		plainStyle(c)
	}
}

var yaml11Bool = map[string]bool{
	"y": true, "yes": true, "n": true, "no": true,
	"on": true, "off": true, "true": true, "false": true,
}
