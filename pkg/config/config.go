package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/cabrillo"
	ConfigFileName    = "cabrillo.yml"

	DefaultPort        = 8000
	DefaultReleasePort = 8010
)

// ValidLogLevels is the list of accepted log levels
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds all Cabrillo server and CLI settings
type Config struct {
	// BindAddress is the address the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the development server port
	Port int `yaml:"port" json:"port"`

	// ReleasePort is the release server port
	ReleasePort int `yaml:"release_port" json:"release_port"`

	// StaticDir is served from disk in development mode
	StaticDir string `yaml:"static_dir" json:"static_dir"`

	// CtyFile replaces the embedded cty.csv subset when set
	CtyFile string `yaml:"cty_file" json:"cty_file"`

	// MaxUploadBytes limits the size of uploaded logs
	MaxUploadBytes int64 `yaml:"max_upload_bytes" json:"max_upload_bytes"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// CORSAllowedOrigins restricts cross origin requests, empty allows all
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" json:"cors_allowed_origins"`

	// IngestExtensions are the file extensions picked up by the watcher
	IngestExtensions []string `yaml:"ingest_extensions" json:"ingest_extensions"`

	// IngestConcurrency bounds parallel parsing in batch operations
	IngestConcurrency int `yaml:"ingest_concurrency" json:"ingest_concurrency"`

	// ArchiveListLimitMax is the maximum number of submissions listed at once
	ArchiveListLimitMax int `yaml:"archive_list_limit_max" json:"archive_list_limit_max"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

func newDefault() *Config {
	return &Config{
		BindAddress:         "0.0.0.0",
		Port:                DefaultPort,
		ReleasePort:         DefaultReleasePort,
		StaticDir:           "static",
		CtyFile:             "",
		MaxUploadBytes:      10 << 20,
		LogLevel:            "info",
		CORSAllowedOrigins:  []string{},
		IngestExtensions:    []string{".log", ".txt", ".cbr"},
		IngestConcurrency:   4,
		ArchiveListLimitMax: 100,
		sources:             make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("CABRILLO_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "release_port", "static_dir", "cty_file",
		"max_upload_bytes", "log_level", "cors_allowed_origins",
		"ingest_extensions", "ingest_concurrency", "archive_list_limit_max",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.ReleasePort != 0 {
		c.ReleasePort = file.ReleasePort
		c.sources["release_port"] = "file"
	}
	if file.StaticDir != "" {
		c.StaticDir = file.StaticDir
		c.sources["static_dir"] = "file"
	}
	if file.CtyFile != "" {
		c.CtyFile = file.CtyFile
		c.sources["cty_file"] = "file"
	}
	if file.MaxUploadBytes != 0 {
		c.MaxUploadBytes = file.MaxUploadBytes
		c.sources["max_upload_bytes"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if len(file.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = file.CORSAllowedOrigins
		c.sources["cors_allowed_origins"] = "file"
	}
	if len(file.IngestExtensions) > 0 {
		c.IngestExtensions = file.IngestExtensions
		c.sources["ingest_extensions"] = "file"
	}
	if file.IngestConcurrency != 0 {
		c.IngestConcurrency = file.IngestConcurrency
		c.sources["ingest_concurrency"] = "file"
	}
	if file.ArchiveListLimitMax != 0 {
		c.ArchiveListLimitMax = file.ArchiveListLimitMax
		c.sources["archive_list_limit_max"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("CABRILLO_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("CABRILLO_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("CABRILLO_RELEASE_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ReleasePort = i
			c.sources["release_port"] = "environment"
		}
	}
	if val := os.Getenv("CABRILLO_STATIC_DIR"); val != "" {
		c.StaticDir = val
		c.sources["static_dir"] = "environment"
	}
	if val := os.Getenv("CABRILLO_CTY_FILE"); val != "" {
		c.CtyFile = val
		c.sources["cty_file"] = "environment"
	}
	if val := os.Getenv("CABRILLO_MAX_UPLOAD_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.MaxUploadBytes = i
			c.sources["max_upload_bytes"] = "environment"
		}
	}
	if val := os.Getenv("CABRILLO_LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(val)
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("CABRILLO_CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORSAllowedOrigins = splitAndTrim(val)
		c.sources["cors_allowed_origins"] = "environment"
	}
	if val := os.Getenv("CABRILLO_INGEST_EXTENSIONS"); val != "" {
		c.IngestExtensions = splitAndTrim(val)
		c.sources["ingest_extensions"] = "environment"
	}
	if val := os.Getenv("CABRILLO_INGEST_CONCURRENCY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.IngestConcurrency = i
			c.sources["ingest_concurrency"] = "environment"
		}
	}
	if val := os.Getenv("CABRILLO_ARCHIVE_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ArchiveListLimitMax = i
			c.sources["archive_list_limit_max"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// ServePort returns the port for the development or the release flow
func (c *Config) ServePort(release bool) int {
	if release {
		return c.ReleasePort
	}
	return c.Port
}

// HasIngestExtension reports whether a file name has one of the configured
// ingest extensions
func (c *Config) HasIngestExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range c.IngestExtensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.ReleasePort <= 0 || c.ReleasePort > 65535 {
		return fmt.Errorf("invalid release_port: %d", c.ReleasePort)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max_upload_bytes: %d", c.MaxUploadBytes)
	}
	if c.IngestConcurrency <= 0 {
		return fmt.Errorf("invalid ingest_concurrency: %d", c.IngestConcurrency)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if l == c.LogLevel {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}

	for _, ext := range c.IngestExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid ingest extension %q: must start with a dot", ext)
		}
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "release_port", Value: strconv.Itoa(c.ReleasePort), Source: c.Source("release_port")},
		{Name: "static_dir", Value: c.StaticDir, Source: c.Source("static_dir")},
		{Name: "cty_file", Value: c.CtyFile, Source: c.Source("cty_file")},
		{Name: "max_upload_bytes", Value: strconv.FormatInt(c.MaxUploadBytes, 10), Source: c.Source("max_upload_bytes")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "cors_allowed_origins", Value: strings.Join(c.CORSAllowedOrigins, ","), Source: c.Source("cors_allowed_origins")},
		{Name: "ingest_extensions", Value: strings.Join(c.IngestExtensions, ","), Source: c.Source("ingest_extensions")},
		{Name: "ingest_concurrency", Value: strconv.Itoa(c.IngestConcurrency), Source: c.Source("ingest_concurrency")},
		{Name: "archive_list_limit_max", Value: strconv.Itoa(c.ArchiveListLimitMax), Source: c.Source("archive_list_limit_max")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-28s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-28s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-28s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
