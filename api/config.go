package api

import (
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/spf13/viper"
	"strings"
	"sync"
	"time"
)

type Config struct {
	ServerConfig
	AuthConfig
	StorageConfig
	RedisConfig
	ActivityConfig
	RateLimitConfig
	RealtimeChannel string
}

type ServerConfig struct {
	Port           int
	Mode           string
	GinMode        string
	Swagger        bool
	Metrics        bool
	AllowedOrigins []string
	ShutdownGrace  time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type StorageConfig struct {
	Backend string
	Seed    bool

	SQLDriver          string
	SQLDSN             string
	SQLMaxIdleConns    int
	SQLMaxOpenConns    int
	SQLConnMaxLifetime time.Duration

	FileDir string

	DynamoEndpoint    string
	DynamoRegion      string
	DynamoTablePrefix string
}

type RedisConfig struct {
	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type ActivityConfig struct {
	ActivityRetention     int
	ActivityPruneInterval time.Duration
}

type RateLimitConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

const (
	BackendAdaptive = "adaptive"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendDynamo   = "dynamo"

	ServerModeHTTP   = "http"
	ServerModeLambda = "lambda"
)

var settingsOnce sync.Once

// ConfigureViper binds environment variables so that e.g. STORAGE_BACKEND
// overrides storage.backend.
func ConfigureViper() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func ReadConfig() *Config {
	var conf = &Config{
		ServerConfig: ServerConfig{
			Port:           getIntOrDefault("server.port", 3000),
			Mode:           getStringOrDefault("server.mode", ServerModeHTTP),
			GinMode:        getStringOrDefault("server.ginMode", "release"),
			Swagger:        getBoolOrDefault("server.swagger", false),
			Metrics:        getBoolOrDefault("server.metrics", true),
			AllowedOrigins: getStringSliceOrDefault("server.allowedOrigins", []string{"http://localhost:5173"}),
			ShutdownGrace:  getDurationOrDefault("server.shutdownGrace", 10*time.Second),
		},
		AuthConfig: AuthConfig{
			JWTSecret: getString("auth.jwtSecret"),
			TokenTTL:  getDurationOrDefault("auth.tokenTTL", 24*time.Hour),
		},
		StorageConfig: StorageConfig{
			Backend:            getStringOrDefault("storage.backend", BackendAdaptive),
			Seed:               getBoolOrDefault("storage.seed", true),
			SQLDriver:          getStringOrDefault("storage.sql.driver", BackendMySQL),
			SQLDSN:             getStringOrDefault("storage.sql.dsn", ""),
			SQLMaxIdleConns:    getIntOrDefault("storage.sql.maxIdleConns", 10),
			SQLMaxOpenConns:    getIntOrDefault("storage.sql.maxOpenConns", 100),
			SQLConnMaxLifetime: getDurationOrDefault("storage.sql.connMaxLifetime", time.Hour),
			FileDir:            getStringOrDefault("storage.file.dir", "./data"),
			DynamoEndpoint:     getStringOrDefault("storage.dynamo.endpoint", ""),
			DynamoRegion:       getStringOrDefault("storage.dynamo.region", "us-east-1"),
			DynamoTablePrefix:  getStringOrDefault("storage.dynamo.tablePrefix", "Podium"),
		},
		RedisConfig: RedisConfig{
			RedisEnabled:  getBoolOrDefault("redis.enabled", false),
			RedisAddr:     getStringOrDefault("redis.addr", "localhost:6379"),
			RedisPassword: getStringOrDefault("redis.password", ""),
			RedisDB:       getIntOrDefault("redis.db", 0),
		},
		ActivityConfig: ActivityConfig{
			ActivityRetention:     getIntOrDefault("activity.retention", 5000),
			ActivityPruneInterval: getDurationOrDefault("activity.pruneInterval", 10*time.Minute),
		},
		RateLimitConfig: RateLimitConfig{
			RateLimitRPS:   getFloatOrDefault("ratelimit.rps", 5),
			RateLimitBurst: getIntOrDefault("ratelimit.burst", 30),
		},
		RealtimeChannel: getStringOrDefault("realtime.channel", "podium:events"),
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getString(name string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Fatalf("required environment variable '%s' is missing", name)
	return ""
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getFloatOrDefault(name string, def float64) float64 {
	if viper.IsSet(name) {
		v := viper.GetFloat64(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(name string, def bool) bool {
	if viper.IsSet(name) {
		v := viper.GetBool(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getDurationOrDefault(name string, def time.Duration) time.Duration {
	if viper.IsSet(name) {
		v := viper.GetDuration(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

// getStringSliceOrDefault also accepts a comma separated env value.
func getStringSliceOrDefault(name string, def []string) []string {
	if viper.IsSet(name) {
		v := viper.GetStringSlice(name)
		if len(v) == 1 && strings.Contains(v[0], ",") {
			v = strings.Split(v[0], ",")
		}
		for i := range v {
			v[i] = strings.TrimSpace(v[i])
		}
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
