package config

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the FS Register API credentials. The username is the
// email registered on the FCA developer portal.
type APIConfig struct {
	Username string `mapstructure:"username"`
	Key      string `mapstructure:"key"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
