// Package file loads automaton definitions from YAML or JSON documents on disk.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadDefinition reads the definition stored at path.
// Files ending in .json are parsed as JSON; anything else is parsed as YAML.
func LoadDefinition(path string) (domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("failed to read definition: %w", err)
	}
	def, err := ParseDefinition(data, formatOf(path))
	if err != nil {
		return domain.Definition{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return def, nil
}

// Format selects the document syntax accepted by ParseDefinition.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ParseDefinition decodes a definition document.
// Unknown keys are reported so that typos do not silently drop transitions.
func ParseDefinition(data []byte, format Format) (domain.Definition, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return domain.Definition{}, fmt.Errorf("failed to parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.Definition{}, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		return domain.Definition{}, fmt.Errorf("unsupported format %q", format)
	}
	if raw == nil {
		return domain.Definition{}, fmt.Errorf("%w: empty document", domain.ErrMalformedDefinition)
	}

	var def domain.Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.TextUnmarshallerHookFunc(),
		ErrorUnused: true,
		Result:      &def,
	})
	if err != nil {
		return domain.Definition{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return domain.Definition{}, fmt.Errorf("%w: %v", domain.ErrMalformedDefinition, err)
	}
	return def, nil
}

// EncodeDefinition renders def in the given format. The output round-trips through ParseDefinition.
func EncodeDefinition(def domain.Definition, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(def, "", "  ")
	case FormatYAML:
		return yaml.Marshal(yamlDefinition(def))
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// yamlDefinition converts symbols to strings; yaml.v3 does not use TextMarshaler for map keys.
func yamlDefinition(def domain.Definition) map[string]any {
	alphabet := make([]string, len(def.Alphabet))
	for i, s := range def.Alphabet {
		alphabet[i] = s.String()
	}
	transitions := make(map[string]map[string]string, len(def.Transitions))
	for from, row := range def.Transitions {
		out := make(map[string]string, len(row))
		for sym, to := range row {
			out[sym.String()] = string(to)
		}
		transitions[string(from)] = out
	}
	doc := map[string]any{
		"states":      def.States,
		"start":       def.Start,
		"dead":        def.Dead,
		"accepting":   def.Accepting,
		"transitions": transitions,
	}
	if def.Name != "" {
		doc["name"] = def.Name
	}
	if len(alphabet) > 0 {
		doc["alphabet"] = alphabet
	}
	return doc
}
