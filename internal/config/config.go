package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	App struct {
		Port      string `mapstructure:"port"`
		Env       string `mapstructure:"env"`
		StaticDir string `mapstructure:"static_dir"`
	} `mapstructure:"app"`
	Storage struct {
		Driver       string `mapstructure:"driver"`
		Namespace    string `mapstructure:"namespace"`
		SQLitePath   string `mapstructure:"sqlite_path"`
		StrictDecode bool   `mapstructure:"strict_decode"`
	} `mapstructure:"storage"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Backup struct {
		Keep int `mapstructure:"keep"`
	} `mapstructure:"backup"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

// KafkaEnabled reports whether override events should be produced.
func (c Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// LoadConfig reads .env, then config.yaml from path, then the environment.
func LoadConfig(path string) (cfg Config, err error) {
	if err = godotenv.Load(path + "/.env"); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.static_dir", "./static")
	v.SetDefault("storage.driver", StorageSQLite)
	v.SetDefault("storage.namespace", "mozza")
	v.SetDefault("storage.sqlite_path", "./portfolio.db")
	v.SetDefault("storage.strict_decode", false)
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.topic", "override.events")
	v.SetDefault("kafka.group_id", "snapshot-archiver-group")
	v.SetDefault("backup.keep", 20)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.static_dir", "APP_STATIC_DIR")
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.namespace", "STORAGE_NAMESPACE")
	v.BindEnv("storage.sqlite_path", "STORAGE_SQLITE_PATH")
	v.BindEnv("storage.strict_decode", "STORAGE_STRICT_DECODE")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.topic", "KAFKA_TOPIC")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")

	v.BindEnv("backup.keep", "BACKUP_KEEP")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	v.BindEnv("jaeger.otlp_endpoint", "OTLP_ENDPOINT")

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Kafka.Brokers = splitBrokers(cfg.Kafka.Brokers)
	return cfg, nil
}

// splitBrokers accepts both a YAML list and a comma separated env value.
func splitBrokers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, b := range in {
		for _, part := range strings.Split(b, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
