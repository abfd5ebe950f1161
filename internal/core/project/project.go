package project

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Descriptor represents the overall structure of the info.yaml file.
type Descriptor struct {
	Project       *ProjectInfo   `yaml:"project"`
	Documentation *Documentation `yaml:"documentation"`
}

// ProjectInfo holds the design selection for the build.
type ProjectInfo struct {
	WokwiID     WokwiID  `yaml:"wokwi_id"`
	TopModule   string   `yaml:"top_module,omitempty"`
	SourceFiles []string `yaml:"source_files,omitempty"`
}

// UnmarshalYAML requires wokwi_id to be present and non-null, so that a
// forgotten id never selects local sources by accident.
func (p *ProjectInfo) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		WokwiID     *WokwiID `yaml:"wokwi_id"`
		TopModule   string   `yaml:"top_module"`
		SourceFiles []string `yaml:"source_files"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.WokwiID == nil {
		return fmt.Errorf("line %d: wokwi id must be an integer, got no value", value.Line)
	}
	*p = ProjectInfo{WokwiID: *raw.WokwiID, TopModule: raw.TopModule, SourceFiles: raw.SourceFiles}
	return nil
}

// Documentation holds the datasheet metadata for the design.
// Required fields are pointers so that a missing key can be told apart from an empty one.
type Documentation struct {
	Author      *string  `yaml:"author"`
	Title       *string  `yaml:"title"`
	Description *string  `yaml:"description"`
	HowItWorks  *string  `yaml:"how_it_works"`
	HowToTest   *string  `yaml:"how_to_test"`
	Language    *string  `yaml:"language"`
	Discord     string   `yaml:"discord,omitempty"`
	Inputs      []string `yaml:"inputs"`
	Outputs     []string `yaml:"outputs"`
}

// RequiredFields lists the documentation keys that must be present and non-empty, in check order.
var RequiredFields = []string{"author", "title", "description", "how_it_works", "how_to_test", "language"}

// Field returns the value of a required documentation field by its YAML key.
// ok is false when the key was not present in the document.
func (d *Documentation) Field(key string) (value string, ok bool) {
	if d == nil {
		return "", false
	}
	var p *string
	switch key {
	case "author":
		p = d.Author
	case "title":
		p = d.Title
	case "description":
		p = d.Description
	case "how_it_works":
		p = d.HowItWorks
	case "how_to_test":
		p = d.HowToTest
	case "language":
		p = d.Language
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// WokwiID is the design identifier. Zero selects local HDL sources,
// a positive value references a design hosted on Wokwi.
type WokwiID int64

// UnmarshalYAML accepts any YAML integer (0, 0x2A, 1_000) and numeric
// strings in base 10 ("42").
func (id *WokwiID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: wokwi id must be an integer", value.Line)
	}

	var n int64
	switch value.ShortTag() {
	case "!!int":
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("line %d: wokwi id must be an integer, got %q", value.Line, value.Value)
		}
	case "!!str":
		parsed, err := strconv.ParseInt(strings.TrimSpace(value.Value), 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: wokwi id must be an integer, got %q", value.Line, value.Value)
		}
		n = parsed
	default:
		return fmt.Errorf("line %d: wokwi id must be an integer, got %q", value.Line, value.Value)
	}
	*id = WokwiID(n)
	return nil
}

// IsLocal reports whether the design is built from local source files.
func (id WokwiID) IsLocal() bool {
	return id == 0
}
