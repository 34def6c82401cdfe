// Package config loads the YAML runtime configuration. Every field has a
// working default, so running without a config file is fully supported.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pdfquiz/internal/constants"
)

type ParserConfig struct {
	// AnswerSectionRatio is the positional fallback for locating the
	// answer key, as a fraction of the document.
	AnswerSectionRatio float64 `yaml:"answer_section_ratio"`
	// MinOptions is the smallest option count a question may keep.
	MinOptions int `yaml:"min_options"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

type Config struct {
	TestsDir       string       `yaml:"tests_dir"`
	ListenAddr     string       `yaml:"listen_addr"`
	MaxUploadBytes int64        `yaml:"max_upload_bytes"`
	Parser         ParserConfig `yaml:"parser"`
	Export         ExportConfig `yaml:"export"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		TestsDir:       "tests",
		ListenAddr:     ":8080",
		MaxUploadBytes: constants.MaxUploadBytes,
		Parser: ParserConfig{
			AnswerSectionRatio: constants.AnswerSectionRatio,
			MinOptions:         constants.MinOptionsPerQuestion,
		},
		Export: ExportConfig{Dir: "exports"},
	}
}

// Load reads and parses a config file, filling omitted fields with their
// defaults. An empty path returns the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := parse(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.TestsDir == "" {
		return fmt.Errorf("config: tests_dir must not be empty")
	}
	if cfg.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: max_upload_bytes must be positive")
	}
	if cfg.Parser.AnswerSectionRatio <= 0 || cfg.Parser.AnswerSectionRatio >= 1 {
		return fmt.Errorf("config: parser.answer_section_ratio must be between 0 and 1")
	}
	if cfg.Parser.MinOptions < 2 || cfg.Parser.MinOptions > constants.MaxOptionsPerQuestion {
		return fmt.Errorf("config: parser.min_options must be between 2 and %d", constants.MaxOptionsPerQuestion)
	}
	return nil
}
