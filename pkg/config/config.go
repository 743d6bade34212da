// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/sceneshot/pkg/orchestrator"
	"github.com/user/sceneshot/pkg/pipeline"
)

// Config represents the full configuration for sceneshot.
type Config struct {
	// Input/Output
	Videos    []string `yaml:"videos"`
	OutputDir string   `yaml:"output_dir"`

	// Model
	ModelPath string  `yaml:"model"`
	Threshold float32 `yaml:"threshold"`

	// Window geometry
	WindowLen int `yaml:"window_len"`
	Stride    int `yaml:"stride"`
	Context   int `yaml:"context"`

	// Decoding
	FFmpegPath string `yaml:"ffmpeg_path"`

	// Event transport
	Broker string `yaml:"broker"`
	Topic  string `yaml:"topic"`

	// Visualization
	Visualize bool `yaml:"visualize"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	geo := pipeline.DefaultGeometry()
	return Config{
		// Model
		ModelPath: "./transnetv2.onnx",
		Threshold: pipeline.DefaultThreshold,

		// Window geometry
		WindowLen: geo.Window,
		Stride:    geo.Stride,
		Context:   geo.Context,

		// Event transport
		Topic: "video-scenes",

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks that the configuration describes a usable geometry.
func (c Config) Validate() error {
	if c.WindowLen <= 0 || c.Stride <= 0 || c.Context < 0 {
		return fmt.Errorf("%w: window_len, stride must be positive and context non-negative",
			pipeline.ErrInvalidInput)
	}
	if c.WindowLen != c.Stride+2*c.Context {
		return fmt.Errorf("%w: window_len (%d) must equal stride (%d) + 2*context (%d)",
			pipeline.ErrInvalidInput, c.WindowLen, c.Stride, c.Context)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0, 1]", pipeline.ErrInvalidInput, c.Threshold)
	}
	return nil
}

// Geometry returns the window geometry described by the configuration.
func (c Config) Geometry() pipeline.Geometry {
	return pipeline.Geometry{
		Window:  c.WindowLen,
		Stride:  c.Stride,
		Context: c.Context,
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		Videos:    c.Videos,
		Threshold: c.Threshold,
		Geometry:  c.Geometry(),
		OutputDir: c.OutputDir,
	}
}
