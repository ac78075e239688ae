package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
	"gopkg.in/yaml.v3"
)

// Load reads a config file. YAML is used for .yaml and .yml files, JSON
// otherwise.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	unmarshal := json.Unmarshal
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	}

	var cfg Config
	if err := unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	var raw map[string]any
	if err := unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fields = fieldsOf(raw)
	return &cfg, nil
}

// fieldsOf lists the keys of a decoded document, one level of nesting
// deep.
func fieldsOf(raw map[string]any) map[string]bool {
	set := make(map[string]bool, len(raw))
	for k, v := range raw {
		set[k] = true
		if sub, ok := v.(map[string]any); ok {
			for sk := range sub {
				set[k+"."+sk] = true
			}
		}
	}
	return set
}

// Fetch downloads a single config file from any go-getter source (local
// path, http, git, s3...) into dir and returns its local path. The file
// keeps the source's base name so Load can pick the decoder.
func Fetch(ctx context.Context, src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}

	name := filepath.Base(strings.SplitN(src, "?", 2)[0])
	if name == "." || name == "/" || name == "" {
		name = "preset.yaml"
	}
	dst := filepath.Join(dir, name)

	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("fetch preset %s: %w", src, err)
	}
	return dst, nil
}

// LoadPreset fetches src into dir and loads it.
func LoadPreset(ctx context.Context, src, dir string) (*Config, error) {
	path, err := Fetch(ctx, src, dir)
	if err != nil {
		return nil, err
	}
	return Load(path)
}
