package config

const (
	defaultConfigPath        = "~/.config/textp2srt/config.toml"
	projectConfigName        = "textp2srt.toml"
	defaultTimelineDatabase  = "~/.local/share/textp2srt/timeline.db"
	defaultMaxEffectSeconds  = 0.6
	defaultMinDistinctRunes  = 6
	defaultClipboardBackend  = BackendCommand
	defaultClipboardInterval = 1.0
	defaultClipboardEncoding = "utf-8"
	defaultPreviewLimit      = 30
	defaultDiagnoseLimit     = 10
	defaultTailSize          = 5
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"

	// EnvTimelineDatabase overrides timeline.database.
	EnvTimelineDatabase = "TEXTP2SRT_TIMELINE_DB"
	// EnvTrack supplies timeline.track when the file leaves it empty.
	EnvTrack            = "TEXTP2SRT_TRACK"
)

// Clipboard backends.
const (
	BackendCommand = "command"
	BackendSystem  = "system"
)

var (
	defaultClipboardCommand     = []string{"pbpaste"}
	defaultFallbackEncodings    = []string{"utf-8", "utf-16-le", "shift_jis", "mac_roman"}
	supportedClipboardEncodings = map[string]struct{}{
		"utf-8":     {},
		"utf-16-le": {},
		"shift_jis": {},
		"mac_roman": {},
	}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Timeline: Timeline{
			Database: defaultTimelineDatabase,
		},
		Filter: Filter{
			IgnoreEffects:    true,
			MaxEffectSeconds: defaultMaxEffectSeconds,
			MinDistinctRunes: defaultMinDistinctRunes,
		},
		Clipboard: Clipboard{
			Backend:           defaultClipboardBackend,
			Command:           append([]string(nil), defaultClipboardCommand...),
			IntervalSeconds:   defaultClipboardInterval,
			Encoding:          defaultClipboardEncoding,
			FallbackEncodings: append([]string(nil), defaultFallbackEncodings...),
		},
		Output: Output{
			PreviewLimit:  defaultPreviewLimit,
			DiagnoseLimit: defaultDiagnoseLimit,
			TailSize:      defaultTailSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
