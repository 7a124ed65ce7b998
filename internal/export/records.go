package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"kursnet-xml-tool/internal/domain"
	"kursnet-xml-tool/internal/openqcat"
)

// Output formats of WriteRecords.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// WriteRecords dumps records as a list of nested maps keyed by element
// name, attributes prefixed with "@_".
func WriteRecords(w io.Writer, records []*domain.CourseRecord, format string) error {
	out := make([]map[string]any, 0, len(records))
	for _, r := range records {
		out = append(out, openqcat.Map(r))
	}

	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("export: yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("export: json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("export: unknown format %q", format)
}
