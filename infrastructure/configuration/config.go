package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"video-distributor/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Gemini      Gemini      `json:"gemini"`
	Publish     Publish     `json:"publish"`
	Session     Session     `json:"session"`
	RedisClient RedisClient `json:"redisClient"`
	Credential  Credential  `json:"credential"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port         int      `json:"port"`
	TLSEnabled   bool     `json:"tlsEnabled"`
	TLSCertFile  string   `json:"tlsCertFile"`
	TLSKeyFile   string   `json:"tlsKeyFile"`
	AllowOrigins []string `json:"allowOrigins"`
}

type Gemini struct {
	// APIKey seeds the credential store on startup when nothing is saved yet.
	APIKey         string  `json:"apiKey"`
	Model          string  `json:"model"`
	Temperature    float32 `json:"temperature"`
	TimeoutSeconds int     `json:"timeoutSeconds"`
}

type Publish struct {
	MinDelayMs  int     `json:"minDelayMs"`
	MaxDelayMs  int     `json:"maxDelayMs"`
	FailureRate float64 `json:"failureRate"`
}

type Session struct {
	MaxIdleMinutes       int `json:"maxIdleMinutes"`
	SweepIntervalSeconds int `json:"sweepIntervalSeconds"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Username string `json:"username"`
	DB       int    `json:"db"`
}

type Credential struct {
	Key string `json:"key"`
}

type Logger struct {
	Format string `json:"format"`
	Level  string `json:"level"`
}

func (g Gemini) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

func (p Publish) MinDelay() time.Duration {
	return time.Duration(p.MinDelayMs) * time.Millisecond
}

func (p Publish) MaxDelay() time.Duration {
	return time.Duration(p.MaxDelayMs) * time.Millisecond
}

func (s Session) MaxIdle() time.Duration {
	return time.Duration(s.MaxIdleMinutes) * time.Minute
}

func (s Session) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalSeconds) * time.Second
}

func (r RedisClient) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

var C Config

func init() {
	LoadConfig()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 10001)
	v.SetDefault("app.allowOrigins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.timeoutSeconds", 60)
	v.SetDefault("publish.minDelayMs", 2000)
	v.SetDefault("publish.maxDelayMs", 5000)
	v.SetDefault("publish.failureRate", 0.0)
	v.SetDefault("session.maxIdleMinutes", 120)
	v.SetDefault("session.sweepIntervalSeconds", 60)
	v.SetDefault("redisClient.host", "localhost")
	v.SetDefault("redisClient.port", "6379")
	v.SetDefault("credential.key", "gemini_api_key")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.level", "debug")
}

// LoadConfig reads config.json (or config-$ENV.json), applies environment
// overrides and replaces C.
func LoadConfig() {
	name := getConfig()
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(name)
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("../../")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().WithField("config", name).Warn("Config file not found, using defaults")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	initApp(&cfg)
	initGemini(&cfg)
	initPublish(&cfg)
	initSession(&cfg)
	initRedis(&cfg)
	initLogger(&cfg)
	C = cfg
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// APP_PORT -> PORT -> config -> default
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			C.App.TLSEnabled = false
		}
	}
	C.App.TLSCertFile = getConfigValue(C.App.TLSCertFile, "TLS_CERT_FILE", "")
	C.App.TLSKeyFile = getConfigValue(C.App.TLSKeyFile, "TLS_KEY_FILE", "")
	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		C.App.AllowOrigins = strings.Split(v, ",")
	}
}

func initGemini(C *Config) {
	C.Gemini.APIKey = getConfigValue(C.Gemini.APIKey, "GEMINI_API_KEY", "")
	C.Gemini.Model = getConfigValue(C.Gemini.Model, "GEMINI_MODEL", "gemini-2.5-flash")
	if C.Gemini.TimeoutSeconds <= 0 {
		C.Gemini.TimeoutSeconds = 60
	}
}

func initPublish(C *Config) {
	if v := os.Getenv("PUBLISH_FAILURE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			C.Publish.FailureRate = f
		}
	}
	if C.Publish.FailureRate < 0 || C.Publish.FailureRate > 1 {
		logger.GetLogger().WithField("failureRate", C.Publish.FailureRate).Warn("publish.failureRate out of range, using 0")
		C.Publish.FailureRate = 0
	}
	if C.Publish.MaxDelayMs < C.Publish.MinDelayMs {
		C.Publish.MaxDelayMs = C.Publish.MinDelayMs
	}
}

func initSession(C *Config) {
	if C.Session.MaxIdleMinutes <= 0 {
		C.Session.MaxIdleMinutes = 120
	}
	if C.Session.SweepIntervalSeconds <= 0 {
		C.Session.SweepIntervalSeconds = 60
	}
	if C.Credential.Key == "" {
		C.Credential.Key = "gemini_api_key"
	}
}

func initRedis(C *Config) {
	C.RedisClient.Host = getConfigValue(C.RedisClient.Host, "REDIS_HOST", "localhost")
	C.RedisClient.Port = getConfigValue(C.RedisClient.Port, "REDIS_PORT", "6379")
	C.RedisClient.Password = getConfigValue(C.RedisClient.Password, "REDIS_PASSWORD", "")
	C.RedisClient.Username = getConfigValue(C.RedisClient.Username, "REDIS_USERNAME", "")
}

func initLogger(C *Config) {
	C.Logger.Format = getConfigValue(C.Logger.Format, "LOG_FORMAT", "json")
	C.Logger.Level = getConfigValue(C.Logger.Level, "LOG_LEVEL", "debug")
}

// getConfigValue prefers the environment, then a non-placeholder config
// value, then the default.
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}
