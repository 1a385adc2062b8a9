package session

import (
	"sort"
	"strconv"
	"strings"

	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
)

const settingsFileName = "settings"

// Settings holds workspace-level editor settings that can override global
// defaults.
type Settings struct {
	TabSize   int
	UseSpaces bool
	Theme     string
	Custom    map[string]string
}

// DefaultSettings returns the built-in default settings.
func DefaultSettings() Settings {
	return Settings{TabSize: 4, UseSpaces: true, Theme: "dark"}
}

// SettingsFilePath returns the settings file path under a workspace
// directory.
func SettingsFilePath(fsys vfs.VFS, workspaceDir string) string {
	return fsys.Join(workspaceDir, workspaceDirName, settingsFileName)
}

// SaveSettings writes s as a key=value file, one setting per line.
func SaveSettings(fsys vfs.VFS, workspaceDir string, s Settings) error {
	dir := fsys.Join(workspaceDir, workspaceDirName)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("tab_size=")
	b.WriteString(strconv.Itoa(s.TabSize))
	b.WriteString("\n")
	b.WriteString("use_spaces=")
	b.WriteString(strconv.FormatBool(s.UseSpaces))
	b.WriteString("\n")
	b.WriteString("theme=")
	b.WriteString(s.Theme)
	b.WriteString("\n")

	keys := make([]string, 0, len(s.Custom))
	for k := range s.Custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(s.Custom[k])
		b.WriteString("\n")
	}

	return fsys.WriteFile(SettingsFilePath(fsys, workspaceDir), []byte(b.String()), 0o644)
}

// LoadSettings reads a key=value settings file, falling back to defaults
// for any key not present.
func LoadSettings(fsys vfs.VFS, workspaceDir string) (Settings, error) {
	data, err := fsys.ReadFile(SettingsFilePath(fsys, workspaceDir))
	if err != nil {
		return Settings{}, err
	}

	s := DefaultSettings()
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])

		switch key {
		case "tab_size":
			if n, err := strconv.Atoi(value); err == nil {
				s.TabSize = n
			}
		case "use_spaces":
			s.UseSpaces = value == "true" || value == "1"
		case "theme":
			s.Theme = value
		default:
			if s.Custom == nil {
				s.Custom = make(map[string]string)
			}
			s.Custom[key] = value
		}
	}
	return s, nil
}
