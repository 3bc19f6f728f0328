package model

type Settings struct {
	DarkMode             bool   `json:"darkMode" yaml:"darkMode"`
	MorningFocusMode     bool   `json:"morningFocusMode" yaml:"morningFocusMode"`
	NotificationsEnabled bool   `json:"notificationsEnabled" yaml:"notificationsEnabled"`
	ReminderTime         string `json:"reminderTime" yaml:"reminderTime"`
}

func DefaultSettings() Settings {
	return Settings{
		DarkMode:             false,
		MorningFocusMode:     false,
		NotificationsEnabled: true,
		ReminderTime:         "08:00",
	}
}
