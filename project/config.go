// Package project handles mew.toml files: loading the package table,
// scaffolding new projects and the semantic versions the upgrade checker
// compares.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const ConfigFileName = "mew.toml"

type Config struct {
	Package Package `toml:"package"`
}

// Package is the [package] table of mew.toml.
type Package struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
	Author      string `toml:"author"`
	Start       string `toml:"start"`
}

// Load reads and parses a mew.toml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Save writes the config back out. The file is generated from a template
// rather than marshalled so the field order stays stable.
func (c *Config) Save(path string) error {
	var sb strings.Builder
	sb.WriteString("[package]\n")
	fmt.Fprintf(&sb, "name = %q\n", c.Package.Name)
	fmt.Fprintf(&sb, "version = %q\n", c.Package.Version)
	fmt.Fprintf(&sb, "description = %q\n", c.Package.Description)
	fmt.Fprintf(&sb, "author = %q\n", c.Package.Author)
	fmt.Fprintf(&sb, "start = %q\n", c.Package.Start)

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig builds the config a fresh project starts with.
func DefaultConfig(name string) *Config {
	return &Config{
		Package: Package{
			Name:        name,
			Version:     "0.1.0",
			Description: "A Mew language project",
			Author:      "",
			Start:       "src/main.mew",
		},
	}
}

const scaffoldMain = "purr(\"Welcome to Mew Programming Language!\");\n"

// Scaffold creates a new project directory: <name>/src/main.mew plus a
// default mew.toml.
func Scaffold(name string) error {
	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("directory '%s' already exists", name)
	}

	srcDir := filepath.Join(name, "src")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "main.mew"), []byte(scaffoldMain), 0644); err != nil {
		return fmt.Errorf("failed to write main.mew: %w", err)
	}

	return DefaultConfig(name).Save(filepath.Join(name, ConfigFileName))
}

// FindConfigFile walks upward from startPath looking for a mew.toml;
// it returns the empty string when none is found.
func FindConfigFile(startPath string) string {
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	dir := startPath
	if !info.IsDir() {
		dir = filepath.Dir(startPath)
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
