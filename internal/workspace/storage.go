package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// workspacesDir returns <user config dir>/winlayout/workspaces.
// WINLAYOUT_WORKSPACES_DIR overrides it.
func workspacesDir() (string, error) {
	if dir := os.Getenv("WINLAYOUT_WORKSPACES_DIR"); dir != "" {
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "winlayout", "workspaces"), nil
}

func validateWorkspaceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("workspace name is required")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("invalid workspace name %q", name)
	}
	if name == "." || name == ".." || strings.Contains(name, "..") {
		return fmt.Errorf("invalid workspace name %q", name)
	}
	return nil
}

// ConfigPath returns the path to a workspace file.
func ConfigPath(name string) string {
	path, err := workspacePath(name)
	if err != nil {
		return ""
	}
	return path
}

func workspacePath(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validateWorkspaceName(name); err != nil {
		return "", err
	}
	dir, err := workspacesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}

// Write persists cfg under its name, replacing any previous snapshot.
func Write(cfg *WorkspaceConfig) error {
	if cfg == nil {
		return fmt.Errorf("workspace is nil")
	}
	name := strings.TrimSpace(cfg.Name)
	if err := validateWorkspaceName(name); err != nil {
		return err
	}
	dir, err := workspacesDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	path, err := workspacePath(name)
	if err != nil {
		return err
	}

	stored := *cfg
	stored.Name = name
	data, err := json.MarshalIndent(&stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode workspace: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write workspace %q: %w", name, err)
	}
	return nil
}

func Read(name string) (*WorkspaceConfig, error) {
	path, err := workspacePath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace %q: %w", name, err)
	}
	var cfg WorkspaceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse workspace %q: %w", name, err)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSpace(name)
	}
	return &cfg, nil
}

func Delete(name string) error {
	path, err := workspacePath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete workspace %q: %w", name, err)
	}
	return nil
}

func List() ([]string, error) {
	dir, err := workspacesDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		out = append(out, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(out)
	return out, nil
}
