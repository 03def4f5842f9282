package utils

import (
	"os"
	"path/filepath"
)

const ConfigFileName = "blackhole.toml"

// ConfigSearchDirs lists the directories checked for a config file when no
// explicit path is given, in priority order.
func ConfigSearchDirs() []string {
	dirs := []string{"."}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "blackhole"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "blackhole"))
	}

	return append(dirs, "/etc/blackhole")
}

// ResolveConfigPath returns the config file to load. An explicit path always
// wins, even if it does not exist, so the caller can report it. An empty
// result means no config file was found and defaults apply.
func ResolveConfigPath(custom string) string {
	if custom != "" {
		return custom
	}

	for _, dir := range ConfigSearchDirs() {
		p := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}

	return ""
}
