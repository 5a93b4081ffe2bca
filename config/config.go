package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all agent configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Control Server Configuration
	Server ServerConfig
	Logger LoggerConfig

	// Push Broker Configuration
	Redis RedisConfig

	// Live Channel Configuration
	LiveChannel LiveChannelConfig

	// Panel Backend Configuration
	Backend BackendConfig

	// Push Channel Configuration
	Push PushConfig

	// Local State Configuration
	Store StoreConfig
	Sound SoundConfig

	// Desktop Integration Configuration
	Notify NotifyConfig
	App    AppConfig

	// Monitoring & Alerting Configuration
	Discord DiscordConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// ServerConfig is the configuration for the agent control server.
type ServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// RedisConfig is the configuration for the push broker.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	UseTLS   bool

	// Connection pool settings
	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// LiveChannelConfig is the configuration for the live websocket channel.
type LiveChannelConfig struct {
	URL             string
	PingInterval    time.Duration
	PongWait        time.Duration
	WriteWait       time.Duration
	MaxMessageSize  int64
	HandshakeWait   time.Duration
	RedialBaseDelay time.Duration
	RedialMaxDelay  time.Duration
}

// BackendConfig is the configuration for the panel backend REST API.
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	RetryCount     int
	RetryDelay     time.Duration
}

// PushConfig is the configuration for the device push channel.
type PushConfig struct {
	ChannelPrefix    string
	HeartbeatKey     string
	HeartbeatTTL     time.Duration
	CacheTagPrefix   string
	PermissionPrompt bool
}

// StoreConfig is the configuration for the local notification store.
type StoreConfig struct {
	Path string
}

// SoundConfig is the configuration for the audio cue player.
type SoundConfig struct {
	Command string
	File    string
}

// NotifyConfig is the configuration for the OS notification command.
type NotifyConfig struct {
	Command string
}

// AppConfig is the configuration for reaching the panel UI itself.
type AppConfig struct {
	URL         string
	OpenCommand string
}

// DiscordConfig is the configuration for Discord webhook alerting.
type DiscordConfig struct {
	WebhookID    string
	WebhookToken string
}

// Load loads configuration using Viper.
func Load() (*Config, error) {
	viper.SetConfigName("resto-notify")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/resto-notify/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Read config file (optional - will use env vars if file not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment
	cfg.Environment.Name = viper.GetString("environment.name")

	// Server
	cfg.Server.Host = viper.GetString("server.host")
	cfg.Server.Port = viper.GetInt("server.port")
	cfg.Server.Mode = viper.GetString("server.mode")

	// Logger
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")
	cfg.Redis.UseTLS = viper.GetBool("redis.use_tls")
	cfg.Redis.MaxRetries = viper.GetInt("redis.max_retries")
	cfg.Redis.MinIdleConns = viper.GetInt("redis.min_idle_conns")
	cfg.Redis.PoolSize = viper.GetInt("redis.pool_size")
	cfg.Redis.PoolTimeout = viper.GetDuration("redis.pool_timeout")
	cfg.Redis.ConnMaxIdleTime = viper.GetDuration("redis.conn_max_idle_time")
	cfg.Redis.ConnMaxLifetime = viper.GetDuration("redis.conn_max_lifetime")

	// Live channel
	cfg.LiveChannel.URL = viper.GetString("livechannel.url")
	cfg.LiveChannel.PingInterval = viper.GetDuration("livechannel.ping_interval")
	cfg.LiveChannel.PongWait = viper.GetDuration("livechannel.pong_wait")
	cfg.LiveChannel.WriteWait = viper.GetDuration("livechannel.write_wait")
	cfg.LiveChannel.MaxMessageSize = viper.GetInt64("livechannel.max_message_size")
	cfg.LiveChannel.HandshakeWait = viper.GetDuration("livechannel.handshake_wait")
	cfg.LiveChannel.RedialBaseDelay = viper.GetDuration("livechannel.redial_base_delay")
	cfg.LiveChannel.RedialMaxDelay = viper.GetDuration("livechannel.redial_max_delay")

	// Backend
	cfg.Backend.BaseURL = viper.GetString("backend.base_url")
	cfg.Backend.RequestTimeout = viper.GetDuration("backend.request_timeout")
	cfg.Backend.RetryCount = viper.GetInt("backend.retry_count")
	cfg.Backend.RetryDelay = viper.GetDuration("backend.retry_delay")

	// Push
	cfg.Push.ChannelPrefix = viper.GetString("push.channel_prefix")
	cfg.Push.HeartbeatKey = viper.GetString("push.heartbeat_key")
	cfg.Push.HeartbeatTTL = viper.GetDuration("push.heartbeat_ttl")
	cfg.Push.CacheTagPrefix = viper.GetString("push.cache_tag_prefix")
	cfg.Push.PermissionPrompt = viper.GetBool("push.permission_prompt")

	// Store
	cfg.Store.Path = viper.GetString("store.path")

	// Sound
	cfg.Sound.Command = viper.GetString("sound.command")
	cfg.Sound.File = viper.GetString("sound.file")

	// Desktop integration
	cfg.Notify.Command = viper.GetString("notify.command")
	cfg.App.URL = viper.GetString("app.url")
	cfg.App.OpenCommand = viper.GetString("app.open_command")

	// Discord
	cfg.Discord.WebhookID = viper.GetString("discord.webhook_id")
	cfg.Discord.WebhookToken = viper.GetString("discord.webhook_token")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// Server
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8091)
	viper.SetDefault("server.mode", "release")

	// Logger
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("logger.color_enabled", false)

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.use_tls", false)
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.min_idle_conns", 2)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.pool_timeout", 4*time.Second)
	viper.SetDefault("redis.conn_max_idle_time", 5*time.Minute)
	viper.SetDefault("redis.conn_max_lifetime", 30*time.Minute)

	// Live channel
	viper.SetDefault("livechannel.ping_interval", 30*time.Second)
	viper.SetDefault("livechannel.pong_wait", 60*time.Second)
	viper.SetDefault("livechannel.write_wait", 10*time.Second)
	viper.SetDefault("livechannel.max_message_size", 4096)
	viper.SetDefault("livechannel.handshake_wait", 10*time.Second)
	viper.SetDefault("livechannel.redial_base_delay", time.Second)
	viper.SetDefault("livechannel.redial_max_delay", 30*time.Second)

	// Backend
	viper.SetDefault("backend.request_timeout", 10*time.Second)
	viper.SetDefault("backend.retry_count", 2)
	viper.SetDefault("backend.retry_delay", time.Second)

	// Push
	viper.SetDefault("push.channel_prefix", "push:")
	viper.SetDefault("push.heartbeat_key", "pushworker:heartbeat")
	viper.SetDefault("push.heartbeat_ttl", 90*time.Second)
	viper.SetDefault("push.cache_tag_prefix", "cache:notify:")
	viper.SetDefault("push.permission_prompt", true)

	// Store
	viper.SetDefault("store.path", "resto-notify.db")

	// Sound
	viper.SetDefault("sound.command", "paplay")
	viper.SetDefault("sound.file", "/usr/share/sounds/freedesktop/stereo/message.oga")

	// Desktop integration
	viper.SetDefault("notify.command", "notify-send")
	viper.SetDefault("app.url", "http://localhost:3000")
	viper.SetDefault("app.open_command", "xdg-open")
}

func validate(cfg *Config) error {
	if cfg.Redis.Host == "" {
		return fmt.Errorf("redis.host is required")
	}
	if cfg.Redis.Port == 0 {
		return fmt.Errorf("redis.port is required")
	}
	if cfg.LiveChannel.URL == "" {
		return fmt.Errorf("livechannel.url is required")
	}
	if cfg.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	return nil
}
