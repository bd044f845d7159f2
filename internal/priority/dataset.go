package priority

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed areas.yaml
var defaultDataset []byte

// Entry is one known locality and its socioeconomic class.
type Entry struct {
	District string `yaml:"district"`
	AreaName string `yaml:"area"`
	Class    Class  `yaml:"class"`
}

type datasetFile struct {
	Areas []Entry `yaml:"areas"`
}

// ParseDataset decodes a YAML reference dataset, preserving entry order.
func ParseDataset(data []byte) ([]Entry, error) {
	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode area dataset: %w", err)
	}
	for i, e := range file.Areas {
		if e.District == "" || e.AreaName == "" {
			return nil, fmt.Errorf("area dataset entry %d: district and area are required", i)
		}
		if !e.Class.IsValid() {
			return nil, fmt.Errorf("area dataset entry %d (%s/%s): unknown class %q", i, e.District, e.AreaName, e.Class)
		}
	}
	return file.Areas, nil
}

// DefaultEntries returns the embedded Karachi locality dataset.
func DefaultEntries() []Entry {
	entries, err := ParseDataset(defaultDataset)
	if err != nil {
		panic(err)
	}
	return entries
}
