// server/config/config.go
package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// --- Sub-structs, mirroring the YAML layout ---

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"`
	CORSOrigins []string `mapstructure:"corsOrigins"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

// TTL parses Expiration, falling back to 24h when unset or malformed.
func (c JWTConfig) TTL() time.Duration {
	d, err := time.ParseDuration(c.Expiration)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

type FabricConfig struct {
	ChannelName       string `mapstructure:"channelName"`
	ChaincodeName     string `mapstructure:"chaincodeName"`
	OrgName           string `mapstructure:"orgName"`
	UserName          string `mapstructure:"userName"`
	ConnectionProfile string `mapstructure:"connectionProfile"`
	UserCertPath      string `mapstructure:"userCertPath"`
	UserKeyDir        string `mapstructure:"userKeyDir"`
	WalletPath        string `mapstructure:"walletPath"`
}

// Enabled reports whether a Fabric network has been configured at all.
func (c FabricConfig) Enabled() bool {
	return c.ConnectionProfile != ""
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	LockTTL  string `mapstructure:"lockTTL"`
}

// Enabled reports whether distributed locking through Redis is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func (c RedisConfig) LockTimeout() time.Duration {
	d, err := time.ParseDuration(c.LockTTL)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SeedConfig struct {
	SuperAdminEmail    string `mapstructure:"superAdminEmail"`
	SuperAdminPassword string `mapstructure:"superAdminPassword"`
}

// --- Main Config struct ---

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Fabric FabricConfig `mapstructure:"fabric"`
	S3     S3Config     `mapstructure:"s3"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Log    LogConfig    `mapstructure:"log"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

// LoadConfig reads config.yaml from path and overrides it with environment
// variables. A .env file in the working directory is loaded first if present.
func LoadConfig(path string) (config Config, err error) {
	if err = godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return
	}
	err = nil

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("mongo.dbName", "relief")
	v.SetDefault("jwt.expiration", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("fabric.walletPath", "wallet")
	v.SetDefault("seed.superAdminEmail", "superadmin@example.com")

	v.AutomaticEnv()

	// key "mongo.uri" in YAML maps to env var "MONGO_URI", etc.
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.dbName", "MONGO_DBNAME")
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "GIN_MODE")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	v.BindEnv("s3.bucket", "S3_BUCKET")
	v.BindEnv("s3.region", "S3_REGION")
	v.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	v.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("fabric.connectionProfile", "FABRIC_CONNECTION_PROFILE")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("seed.superAdminPassword", "SUPERADMIN_PASSWORD")

	// A missing config.yaml is fine, env vars alone are enough.
	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}
