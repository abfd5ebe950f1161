package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/nightconcept/tt-setup/internal/core/project"
)

const DescriptorName = "info.yaml"
const SettingsName = "ttsetup.toml"

// Default locations used when no settings file overrides them.
const (
	DefaultRTLDir        = "verilog/rtl"
	DefaultTemplateDir   = "verilog/rtl"
	DefaultBuildConfig   = "openlane/tiny_user_project/config.json"
	DefaultMetricsReport = "runs/wokwi/reports/metrics.csv"
	DefaultWokwiBaseURL  = "https://wokwi.com"
)

// Settings holds the tool's file locations and remote endpoints.
type Settings struct {
	Paths PathSettings  `toml:"paths"`
	Wokwi WokwiSettings `toml:"wokwi"`

	// Root is the directory relative paths are resolved against.
	Root string `toml:"-"`
}

// PathSettings are slash-separated paths relative to Settings.Root.
type PathSettings struct {
	RTLDir        string `toml:"rtl_dir"`
	TemplateDir   string `toml:"template_dir"`
	BuildConfig   string `toml:"build_config"`
	MetricsReport string `toml:"metrics_report"`
}

type WokwiSettings struct {
	BaseURL string `toml:"base_url"`
}

// DefaultSettings returns settings rooted at the current directory.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

func (s *Settings) applyDefaults() {
	if s.Root == "" {
		s.Root = "."
	}
	if s.Paths.RTLDir == "" {
		s.Paths.RTLDir = DefaultRTLDir
	}
	if s.Paths.TemplateDir == "" {
		s.Paths.TemplateDir = DefaultTemplateDir
	}
	if s.Paths.BuildConfig == "" {
		s.Paths.BuildConfig = DefaultBuildConfig
	}
	if s.Paths.MetricsReport == "" {
		s.Paths.MetricsReport = DefaultMetricsReport
	}
	if s.Wokwi.BaseURL == "" {
		s.Wokwi.BaseURL = DefaultWokwiBaseURL
	}
}

// Path converts a slash-separated settings path into a filesystem path under Root.
func (s *Settings) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// LoadSettings reads the TOML settings file at filePath.
// A missing file is not an error; defaults are returned instead.
func LoadSettings(filePath string) (*Settings, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	s.applyDefaults()
	return &s, nil
}

// LoadDescriptor reads the project descriptor at filePath and unmarshals it.
// Project stays nil when the document has no project section.
func LoadDescriptor(filePath string) (*project.Descriptor, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var desc project.Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, err
	}
	if desc.Documentation == nil {
		desc.Documentation = &project.Documentation{}
	}
	return &desc, nil
}
