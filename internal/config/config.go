package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the meridian service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port of the public API consumed by the map UI.
// - MonitoringPort: The port of the health check and metrics server.
// - Pathfinder: Settings of the external pathfinding backend.
// - Geocoder: Settings of the geocoding provider.
// - Map: Default map view handed to the UI.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env            string           `yaml:"env"`             // Env is the current environment: local, development, production.
	Port           int              `yaml:"port"`            // Port is the public API port.
	MonitoringPort int              `yaml:"monitoring_port"` // MonitoringPort serves /healthz and /metrics.
	Pathfinder     PathfinderConfig `yaml:"pathfinder"`      // Pathfinder holds the pathfinding backend configuration.
	Geocoder       GeocoderConfig   `yaml:"geocoder"`        // Geocoder holds the geocoding provider configuration.
	Map            MapConfig        `yaml:"map"`             // Map holds the default map view.
	Database       PostgresConfig   `yaml:"postgres"`        // Database holds the postgres database configuration.
}

// PathfinderConfig describes how to reach the pathfinding backend.
type PathfinderConfig struct {
	BaseURL string        `yaml:"base_url"` // BaseURL of the backend, e.g. http://localhost:8080.
	Timeout time.Duration `yaml:"timeout"`  // Timeout of a single HTTP request.
	Retries int           `yaml:"retries"`  // Retries is the number of extra attempts after a transient failure.
}

// GeocoderConfig describes the geocoding provider.
type GeocoderConfig struct {
	ProviderType string        `yaml:"provider"`    // ProviderType specifies which geocoding provider to use.
	APIKey       string        `yaml:"api_key"`     // APIKey for providers that require one.
	BaseURL      string        `yaml:"base_url"`    // BaseURL overrides the provider endpoint (Nominatim only).
	MaxResults   int           `yaml:"max_results"` // MaxResults is the number of candidates returned per search.
	Workers      int           `yaml:"workers"`     // Workers resolving several queries concurrently.
	CacheTTL     time.Duration `yaml:"cache_ttl"`   // CacheTTL is how long geocoding results stay cached.
}

// MapConfig is the default map view.
type MapConfig struct {
	DefaultLat  float64 `yaml:"default_lat"`
	DefaultLng  float64 `yaml:"default_lng"`
	DefaultZoom int     `yaml:"default_zoom"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Name     string `yaml:"db_name"`  // Name is the name of the database.
}

// MustLoad loads the configuration from the environment and an optional YAML file
// pointed to by MERIDIAN_CONFIG_FILE. Environment variables take precedence over the file.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := newViper()

	if path := vpr.GetString("config_file"); path != "" {
		vpr.SetConfigFile(path)
		vpr.SetConfigType("yaml")
		if err := vpr.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	port, err := strconv.Atoi(vpr.GetString("port"))
	if err != nil {
		panic("failed to parse API port from configuration")
	}

	monitoringPort, err := strconv.Atoi(vpr.GetString("monitoring_port"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	timeout, err := time.ParseDuration(vpr.GetString("pathfinder.timeout"))
	if err != nil {
		panic("failed to parse pathfinder timeout from configuration")
	}

	retries, err := strconv.Atoi(vpr.GetString("pathfinder.retries"))
	if err != nil {
		panic("failed to parse pathfinder retries from configuration, must be an integer types")
	}

	workers, err := strconv.Atoi(vpr.GetString("geocoder.workers"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer types")
	}

	maxResults, err := strconv.Atoi(vpr.GetString("geocoder.max_results"))
	if err != nil {
		panic("failed to parse max results from configuration, must be an integer types")
	}

	cacheTTL, err := time.ParseDuration(vpr.GetString("geocoder.cache_ttl"))
	if err != nil {
		panic("failed to parse cache ttl from configuration")
	}

	return &Config{
		Env:            vpr.GetString("env"),
		Port:           port,
		MonitoringPort: monitoringPort,
		Pathfinder: PathfinderConfig{
			BaseURL: vpr.GetString("pathfinder.base_url"),
			Timeout: timeout,
			Retries: retries,
		},
		Geocoder: GeocoderConfig{
			ProviderType: vpr.GetString("geocoder.provider"),
			APIKey:       vpr.GetString("geocoder.api_key"),
			BaseURL:      vpr.GetString("geocoder.base_url"),
			MaxResults:   maxResults,
			Workers:      workers,
			CacheTTL:     cacheTTL,
		},
		Map: MapConfig{
			DefaultLat:  vpr.GetFloat64("map.default_lat"),
			DefaultLng:  vpr.GetFloat64("map.default_lng"),
			DefaultZoom: vpr.GetInt("map.default_zoom"),
		},
		Database: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Name:     vpr.GetString("postgres.db_name"),
		},
	}
}

// newViper binds every key to its environment variable and sets the defaults.
func newViper() *viper.Viper {
	vpr := viper.New()

	bindings := map[string]string{
		"config_file":          "MERIDIAN_CONFIG_FILE",
		"env":                  "MERIDIAN_ENV",
		"port":                 "MERIDIAN_PORT",
		"monitoring_port":      "MERIDIAN_HEALTH_PORT",
		"pathfinder.base_url":  "MERIDIAN_PATH_API_URL",
		"pathfinder.timeout":   "MERIDIAN_PATH_API_TIMEOUT",
		"pathfinder.retries":   "MERIDIAN_PATH_API_RETRIES",
		"geocoder.provider":    "MERIDIAN_PROVIDER_TYPE",
		"geocoder.api_key":     "MERIDIAN_PROVIDER_KEY",
		"geocoder.base_url":    "MERIDIAN_NOMINATIM_URL",
		"geocoder.max_results": "MERIDIAN_MAX_SEARCH_RESULTS",
		"geocoder.workers":     "MERIDIAN_WORKERS",
		"geocoder.cache_ttl":   "MERIDIAN_CACHE_TTL",
		"map.default_lat":      "MERIDIAN_DEFAULT_LAT",
		"map.default_lng":      "MERIDIAN_DEFAULT_LNG",
		"map.default_zoom":     "MERIDIAN_DEFAULT_ZOOM",
		"postgres.host":        "DB_HOST",
		"postgres.port":        "DB_PORT",
		"postgres.user":        "DB_USERNAME",
		"postgres.password":    "DB_PASSWORD",
		"postgres.db_name":     "DB_NAME",
	}
	for key, env := range bindings {
		_ = vpr.BindEnv(key, env)
	}

	vpr.SetDefault("env", "production")
	vpr.SetDefault("port", "8000")
	vpr.SetDefault("monitoring_port", "8081")
	vpr.SetDefault("pathfinder.base_url", "http://localhost:8080")
	vpr.SetDefault("pathfinder.timeout", "10s")
	vpr.SetDefault("pathfinder.retries", "3")
	vpr.SetDefault("geocoder.provider", "nominatim")
	vpr.SetDefault("geocoder.max_results", "5")
	vpr.SetDefault("geocoder.workers", "4")
	vpr.SetDefault("geocoder.cache_ttl", "24h")
	vpr.SetDefault("map.default_lat", -6.2088)
	vpr.SetDefault("map.default_lng", 106.8456)
	vpr.SetDefault("map.default_zoom", 13)
	vpr.SetDefault("postgres.port", "5432")

	return vpr
}
