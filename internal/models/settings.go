package models

// Theme modes for the presentation surfaces.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// ValidThemeMode reports whether m is one of the known theme modes.
func ValidThemeMode(m string) bool {
	switch m {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}

// Settings is the single user settings record. It is always complete:
// readers merge whatever is stored over the defaults, so no field is
// ever missing after a load.
type Settings struct {
	DefaultPriority   string `json:"defaultPriority"`
	DefaultTime       int    `json:"defaultTime"`
	ShowNotifications bool   `json:"showNotifications"`
	ThemeMode         string `json:"themeMode"`
	AutoCleanup       bool   `json:"autoCleanup"`
	RetentionDays     int    `json:"retentionDays"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		DefaultPriority:   PriorityMedium,
		DefaultTime:       5,
		ShowNotifications: true,
		ThemeMode:         ThemeSystem,
		AutoCleanup:       true,
		RetentionDays:     90,
	}
}
