package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	BackendURL     string `yaml:"backendURL"`     // Fogify backend base URL, e.g. http://localhost:8000
	Port           int    `yaml:"port"`           // local control API port
	MaxUploadSize  int64  `yaml:"maxUploadSize"`  // maximum accepted video size in bytes
	HealthInterval int    `yaml:"healthInterval"` // seconds between backend health probes
	NotifyWS       bool   `yaml:"notifyWS"`       // enable the notify WebSocket for the web UI
}

// Config holds runtime overrides from CLI flags
type Config struct {
	Log               string // log mode: dev|prod|none
	UseConfigPath     string // override config file path
	UseBackendURL     string // override backend base URL
	UsePort           int    // override local API port
	UseMaxUploadSize  int64  // override maximum upload size in bytes
	SkipHealthMonitor bool   // if true, do not run the periodic backend health probe
	SkipNotifyWS      bool   // if true, disable the notify WebSocket endpoint
}
