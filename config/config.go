package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Форматы вывода
const (
	FormatXML  = "xml"
	FormatJSON = "json"
)

type PathsConfig struct {
	SchemaFile  string `yaml:"schema_file"`
	XMLFile     string `yaml:"xml_file"`
	XMLDumpsDir string `yaml:"xml_dumps_dir"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type Config struct {
	Paths  PathsConfig  `yaml:"paths"`
	Output OutputConfig `yaml:"output"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			SchemaFile:  "schema.sql",
			XMLFile:     "database.xml",
			XMLDumpsDir: "dumps",
		},
		Output: OutputConfig{Format: FormatXML},
	}
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatXML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output.Format)
	}
}

// LoadConfig читает YAML поверх значений по умолчанию
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault читает файл, а если его нет по пути по умолчанию - отдаёт Default()
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		cfg, err := LoadConfig(GetDefaultConfigPath())
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return cfg, err
	}
	return LoadConfig(path)
}

func GetDefaultConfigPath() string {
	dir, _ := os.Getwd()
	return filepath.Join(dir, "dbtool.yaml")
}
