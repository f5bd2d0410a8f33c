package keybinds

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/studiowebux/resto/internal/log"
)

// Unbind removes a default binding when used as an action value.
const Unbind = "none"

// Config represents the user's keybinding configuration.
// Each section maps a key to an action name.
type Config struct {
	Version string            `json:"version"`
	Global  map[string]string `json:"global,omitempty"`
	Normal  map[string]string `json:"normal,omitempty"`
	History map[string]string `json:"history,omitempty"`
	Help    map[string]string `json:"help,omitempty"`
	Viewer  map[string]string `json:"viewer,omitempty"`
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:  c.Global,
		ContextNormal:  c.Normal,
		ContextHistory: c.History,
		ContextHelp:    c.Help,
		ContextViewer:  c.Viewer,
	}
}

// ParseConfig decodes keybinds.json content. Comments and trailing commas
// are allowed.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}
	return &config, nil
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry
// User bindings override default bindings
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for key, actionStr := range bindings {
			if err := ValidateKey(key); err != nil {
				return fmt.Errorf("context %s: %w", context, err)
			}
			if actionStr == "" || actionStr == Unbind {
				registry.Unregister(context, key)
				continue
			}
			action := Action(actionStr)
			if !IsKnownAction(action) {
				return fmt.Errorf("context %s: unknown action %q for key %q", context, actionStr, key)
			}
			registry.Register(context, key, action)
		}
	}
	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if configPath == "" {
		return registry, nil
	}
	if _, err := os.Stat(configPath); err != nil {
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
	}
	if err := ApplyConfig(registry, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	report := Check(registry)
	for _, w := range report.Warnings() {
		log.Warn(log.CatConfig, "keybinding warning", "detail", w.Error())
	}
	if report.HasErrors() {
		return nil, fmt.Errorf("invalid keybindings:\n%s", report)
	}
	log.Info(log.CatConfig, "keybindings loaded", "path", configPath)
	return registry, nil
}

// ExportDefaults exports the default bindings in config form.
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	config := &Config{Version: "1.0"}
	for context, target := range map[Context]*map[string]string{
		ContextGlobal:  &config.Global,
		ContextNormal:  &config.Normal,
		ContextHistory: &config.History,
		ContextHelp:    &config.Help,
		ContextViewer:  &config.Viewer,
	} {
		m := map[string]string{}
		for key, action := range r.bindings[context] {
			m[key] = string(action)
		}
		*target = m
	}
	return config
}
