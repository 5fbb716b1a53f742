package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pranshuparmar/procmon/pkg/model"
)

// Snapshot is the machine-readable form of a listing.
type Snapshot struct {
	Platform           string          `json:"platform" yaml:"platform"`
	TakenAt            string          `json:"takenAt" yaml:"takenAt"`
	TotalCPUPercent    float64         `json:"totalCpuPercent" yaml:"totalCpuPercent"`
	TotalMemoryPercent float64         `json:"totalMemoryPercent" yaml:"totalMemoryPercent"`
	Processes          []model.Process `json:"processes" yaml:"processes"`
}

// Format selects a machine-readable encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Encode writes v to w in the given format.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// ToJSON returns v as indented JSON.
func ToJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}
