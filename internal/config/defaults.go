package config

const (
	// FileName is the project configuration file looked up in the activation directory.
	FileName = ".opencode-ntfy.json"
	// DefaultServer is used when the project file does not name a server.
	DefaultServer = "https://ntfy.sh"

	defaultSettingsPath = "~/.config/opencode-ntfy/config.toml"
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
	defaultReceiverBind = "127.0.0.1:7489"
)

const (
	envLogLevel  = "OPENCODE_NTFY_LOG_LEVEL"
	envLogFormat = "OPENCODE_NTFY_LOG_FORMAT"
)

// DefaultEvents returns the lifecycle events watched when the project file
// omits the events list. A fresh slice is returned on every call.
func DefaultEvents() []string {
	return []string{"session.idle", "session.error"}
}

// DefaultSettings returns process settings populated with repository defaults.
func DefaultSettings() Settings {
	return Settings{
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Receiver: Receiver{
			Bind: defaultReceiverBind,
		},
	}
}
