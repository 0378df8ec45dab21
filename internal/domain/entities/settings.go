package entities

type TaskView string

const (
	TaskViewList     TaskView = "list"
	TaskViewKanban   TaskView = "kanban"
	TaskViewCalendar TaskView = "calendar"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings represents the user preferences shown on the settings page
type Settings struct {
	TaskView           TaskView `json:"taskView" yaml:"taskView"`
	Notifications      bool     `json:"notifications" yaml:"notifications"`
	Theme              Theme    `json:"theme" yaml:"theme"`
	EmailNotifications bool     `json:"emailNotifications" yaml:"emailNotifications"`
	PushNotifications  bool     `json:"pushNotifications" yaml:"pushNotifications"`
	DataSharing        bool     `json:"dataSharing" yaml:"dataSharing"`
	Analytics          bool     `json:"analytics" yaml:"analytics"`
}

// DefaultSettings returns the preferences a fresh session starts with.
func DefaultSettings() Settings {
	return Settings{
		TaskView:           TaskViewList,
		Notifications:      true,
		Theme:              ThemeLight,
		EmailNotifications: true,
		PushNotifications:  false,
		DataSharing:        false,
		Analytics:          true,
	}
}

func (tv TaskView) IsValid() bool {
	switch tv {
	case TaskViewList, TaskViewKanban, TaskViewCalendar:
		return true
	default:
		return false
	}
}

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}
