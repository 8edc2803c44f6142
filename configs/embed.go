// Package configs embeds the bundled gateway YAML configurations.
package configs

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.yaml
var embeddedConfigs embed.FS

// Names returns the embedded YAML config filenames in lexical order.
func Names() []string {
	entries, err := fs.Glob(embeddedConfigs, "*.yaml")
	if err != nil {
		return nil
	}
	return entries
}

// Load returns the embedded YAML config by filename.
func Load(name string) ([]byte, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("embedded config name is empty")
	}
	data, err := fs.ReadFile(embeddedConfigs, name)
	if err != nil {
		return nil, fmt.Errorf("read embedded config %q (available: %s): %w", name, strings.Join(Names(), ", "), err)
	}
	return data, nil
}
