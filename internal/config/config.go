package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	PublicBaseURL  string `mapstructure:"public_base_url"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
	CORSOrigins    string `mapstructure:"cors_origins"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type JWTConf struct {
	Secret   string `mapstructure:"secret"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

type MediaConf struct {
	Driver     string `mapstructure:"driver"` // local | s3
	Dir        string `mapstructure:"dir"`
	URLPrefix  string `mapstructure:"url_prefix"`
	MaxImageMB int    `mapstructure:"max_image_mb"`
	MaxVideoMB int    `mapstructure:"max_video_mb"`
}

type AWSConf struct {
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	Endpoint string `mapstructure:"endpoint"`
}

type SMTPConf struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	AdminTo  string `mapstructure:"admin_to"`
}

type RedisConf struct {
	Addr            string `mapstructure:"addr"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	FeedbackPerHour int    `mapstructure:"feedback_per_hour"`
}

type CleanupConf struct {
	CronSpec       string `mapstructure:"cron_spec"`
	RetentionMonth int    `mapstructure:"retention_months"`
}

type Config struct {
	App     AppConf     `mapstructure:"app"`
	Mongo   MongoConf   `mapstructure:"mongodb"`
	JWT     JWTConf     `mapstructure:"jwt"`
	Media   MediaConf   `mapstructure:"media"`
	AWS     AWSConf     `mapstructure:"aws"`
	SMTP    SMTPConf    `mapstructure:"smtp"`
	Redis   RedisConf   `mapstructure:"redis"`
	Cleanup CleanupConf `mapstructure:"cleanup"`

	// derived
	ShutdownTimeout time.Duration
	TokenTTL        time.Duration
}

// Load reads the YAML config file (optional) and applies environment
// overrides with development fallbacks for everything not set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// config file is optional; env vars and defaults carry a dev setup
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, err
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	override := func(env string, apply func(string)) {
		if val := os.Getenv(env); val != "" {
			apply(val)
		}
	}
	override("APP_ENV", func(val string) { cfg.App.Env = val })
	override("APP_PORT", func(val string) {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.App.Port = n
		}
	})
	override("PUBLIC_BASE_URL", func(val string) { cfg.App.PublicBaseURL = val })
	override("CORS_ORIGINS", func(val string) { cfg.App.CORSOrigins = val })
	override("MONGO_URI", func(val string) { cfg.Mongo.URI = val })
	override("MONGO_DB", func(val string) { cfg.Mongo.Database = val })
	override("JWT_SECRET", func(val string) { cfg.JWT.Secret = val })
	override("JWT_TTL_HOURS", func(val string) {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.JWT.TTLHours = n
		}
	})
	override("MEDIA_DRIVER", func(val string) { cfg.Media.Driver = val })
	override("MEDIA_DIR", func(val string) { cfg.Media.Dir = val })
	override("AWS_REGION", func(val string) { cfg.AWS.Region = val })
	override("AWS_BUCKET", func(val string) { cfg.AWS.Bucket = val })
	override("AWS_ENDPOINT", func(val string) { cfg.AWS.Endpoint = val })
	override("SMTP_HOST", func(val string) { cfg.SMTP.Host = val })
	override("SMTP_PORT", func(val string) {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.SMTP.Port = n
		}
	})
	override("SMTP_USERNAME", func(val string) { cfg.SMTP.Username = val })
	override("SMTP_PASSWORD", func(val string) { cfg.SMTP.Password = val })
	override("SMTP_FROM", func(val string) { cfg.SMTP.From = val })
	override("ADMIN_EMAIL", func(val string) { cfg.SMTP.AdminTo = val })
	override("REDIS_ADDR", func(val string) { cfg.Redis.Addr = val })
	override("REDIS_PASSWORD", func(val string) { cfg.Redis.Password = val })

	applyDefaults(&cfg)

	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.TokenTTL = time.Duration(cfg.JWT.TTLHours) * time.Hour
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 5000
	}
	if cfg.App.PublicBaseURL == "" {
		cfg.App.PublicBaseURL = "http://localhost:5000"
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = "mongodb://localhost:27017"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "schoolsite"
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret-change-me"
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 24 * 7
	}
	if cfg.Media.Driver == "" {
		cfg.Media.Driver = "local"
	}
	if cfg.Media.Dir == "" {
		cfg.Media.Dir = "uploads"
	}
	if cfg.Media.URLPrefix == "" {
		cfg.Media.URLPrefix = "/uploads"
	}
	if cfg.Media.MaxImageMB == 0 {
		cfg.Media.MaxImageMB = 10
	}
	if cfg.Media.MaxVideoMB == 0 {
		cfg.Media.MaxVideoMB = 50
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.Redis.FeedbackPerHour == 0 {
		cfg.Redis.FeedbackPerHour = 20
	}
	if cfg.Cleanup.CronSpec == "" {
		cfg.Cleanup.CronSpec = "0 3 * * *"
	}
	if cfg.Cleanup.RetentionMonth == 0 {
		cfg.Cleanup.RetentionMonth = 3
	}
}

func (c *Config) Dev() bool { return c.App.Env == "development" }
