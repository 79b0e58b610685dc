package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // dev/prod

	DatabaseURL      string // あれば最優先
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	DBAutoMigrate    bool // 起動時にgoose up

	JWTSecret  string        // JWT署名シークレット
	JWTTTL     time.Duration // トークン有効期限
	BcryptCost int

	FEURL string // CORSの許可オリジン

	GSTAPIURL   string
	GSTAPIKey   string
	GSTAPIHost  string
	GSTTimeout  time.Duration
	GSTCacheTTL time.Duration

	RedisAddr     string // 空ならGSTキャッシュなし
	RedisPassword string
	RedisDB       int

	LogLevel string
}

const devJWTSecret = "dev-secret-change-me"

// Loadは.env（任意）と環境変数から読む
func Load() (Config, error) {
	// .envは無くてもよい
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := Config{
		Port:  v.GetString("PORT"),
		GoEnv: v.GetString("GO_ENV"),

		DatabaseURL:      v.GetString("DATABASE_URL"),
		PostgresHost:     v.GetString("POSTGRES_HOST"),
		PostgresPort:     v.GetInt("POSTGRES_PORT"),
		PostgresUser:     v.GetString("POSTGRES_USER"),
		PostgresPassword: v.GetString("POSTGRES_PASSWORD"),
		PostgresDB:       v.GetString("POSTGRES_DB"),
		PostgresSSLMode:  v.GetString("POSTGRES_SSLMODE"),
		DBMaxOpenConns:   v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:   v.GetInt("DB_MAX_IDLE_CONNS"),
		DBAutoMigrate:    v.GetBool("DB_AUTO_MIGRATE"),

		JWTSecret:  v.GetString("JWT_SECRET"),
		JWTTTL:     v.GetDuration("JWT_TTL"),
		BcryptCost: v.GetInt("BCRYPT_COST"),

		FEURL: v.GetString("FE_URL"),

		GSTAPIURL:   v.GetString("GST_API_URL"),
		GSTAPIKey:   v.GetString("GST_API_KEY"),
		GSTAPIHost:  v.GetString("GST_API_HOST"),
		GSTTimeout:  v.GetDuration("GST_TIMEOUT"),
		GSTCacheTTL: v.GetDuration("GST_CACHE_TTL"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		LogLevel: v.GetString("LOG_LEVEL"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		if !cfg.IsDev() {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.DatabaseURL == "" {
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
	}
	if cfg.JWTTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be positive")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if cfg.GSTTimeout <= 0 {
		return Config{}, fmt.Errorf("GST_TIMEOUT must be positive")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GO_ENV", "dev")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "marketplace")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("BCRYPT_COST", 10)

	v.SetDefault("FE_URL", "*")

	v.SetDefault("GST_API_URL", "https://gst-verification.p.rapidapi.com/v3/tasks/sync/verify_with_source/ind_gst_certificate")
	v.SetDefault("GST_API_HOST", "gst-verification.p.rapidapi.com")
	v.SetDefault("GST_TIMEOUT", "10s")
	v.SetDefault("GST_CACHE_TTL", "24h")

	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
}

func (c Config) IsDev() bool {
	return c.GoEnv == "" || c.GoEnv == "dev" || c.GoEnv == "development"
}

// DSN はgorm(postgres)用の接続文字列
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// CORSの許可オリジン（カンマ区切り可）
func (c Config) AllowOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.FEURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
