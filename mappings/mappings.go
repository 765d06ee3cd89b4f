// Package mappings handles kona.toml type universe and interop
// configuration.
package mappings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("kona.mappings")

// Config represents a kona.toml configuration: guest type declarations
// plus the interop mappings connecting foreign type names to them.
type Config struct {
	Classes    []ClassDecl     `toml:"class"`
	Interfaces []InterfaceDecl `toml:"interface"`
	Interop    Interop         `toml:"interop"`

	// Dir is the directory containing the kona.toml file (set at load
	// time).
	Dir string `toml:"-"`
}

// ClassDecl declares one guest class.
type ClassDecl struct {
	Name         string   `toml:"name"`
	Superclass   string   `toml:"superclass,omitempty"`
	Interfaces   []string `toml:"interfaces,omitempty"`
	Fields       []string `toml:"fields,omitempty"`
	StaticFields []string `toml:"static-fields,omitempty"`
}

// InterfaceDecl declares one guest interface.
type InterfaceDecl struct {
	Name    string   `toml:"name"`
	Extends []string `toml:"extends,omitempty"`
}

// Interop holds the extension mappings consulted by the coercion
// engine.
type Interop struct {
	Interfaces []InterfaceMapping `toml:"interface"`
	Converters []ConverterMapping `toml:"converter"`
}

// InterfaceMapping routes foreign values reporting a meta name to a
// guest interface through a generated proxy class.
type InterfaceMapping struct {
	Foreign string `toml:"foreign"`
	Target  string `toml:"target"`
}

// ConverterMapping routes foreign values reporting a meta name through
// a converter producing the target class. The converter function
// itself is bound in code with Mappings.BindConverter.
type ConverterMapping struct {
	Foreign string `toml:"foreign"`
	Target  string `toml:"target"`
}

// Load parses a kona.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, "kona.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	log.Debugf("loaded %s: %d classes, %d interfaces, %d interface mappings, %d converter mappings",
		path, len(c.Classes), len(c.Interfaces), len(c.Interop.Interfaces), len(c.Interop.Converters))
	return &c, nil
}

// FindAndLoad walks up from startDir to find a kona.toml file, then
// loads and returns the config. Returns nil if no config is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "kona.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}
