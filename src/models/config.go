package models

// MConfig Structure
type MConfig struct {
	Name     string         `yaml:"name"`
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	LogLevel string         `yaml:"log_level"`
	API      MAPIConfig     `yaml:"api"`
	Network  MNetworkConfig `yaml:"network"`
	Storage  MStorageConfig `yaml:"storage"`
	Watch    MWatchConfig   `yaml:"watch"`
}

// MAPIConfig identifies the application to the brokerage service.
type MAPIConfig struct {
	BaseURL    string `yaml:"base_url"`
	SourceKey  string `yaml:"source_key"`
	AppName    string `yaml:"app_name"`
	AppVersion string `yaml:"app_version"`
}

type MNetworkConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Proxies        []string `yaml:"proxies"`
	RequestTimeout int      `yaml:"timeout"`
	MaxRetries     int      `yaml:"retries"`
	UserAgent      string   `yaml:"user_agent"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

// MWatchConfig drives the quote polling loop and history backfill.
type MWatchConfig struct {
	Symbols             []string `yaml:"symbols"`
	PollIntervalSeconds int      `yaml:"poll_interval_seconds"`
	HistoryDays         int      `yaml:"history_days"`
	RetentionDays       int      `yaml:"retention_days"`
	CredentialsPath     string   `yaml:"credentials_path"`
}
