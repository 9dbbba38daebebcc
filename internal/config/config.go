package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ClassroomAnswerLog/internal/middleware"
	"ClassroomAnswerLog/internal/sheets"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig          `mapstructure:"server"`
	Log       LogConfig             `mapstructure:"log"`
	Ledger    LedgerConfig          `mapstructure:"ledger"`
	Sheets    SheetsConfig          `mapstructure:"sheets"`
	GCP       sheets.ServiceAccount `mapstructure:"gcp_service_account"`
	Auth      AuthConfig            `mapstructure:"auth"`
	Teacher   TeacherConfig         `mapstructure:"teacher"`
	Database  DatabaseConfig        `mapstructure:"database"`
	RateLimit RateLimitConfig       `mapstructure:"rate_limit"`
	CORS      CORSConfig            `mapstructure:"cors"`

	// 진행 현황 확인 대상 학생 목록
	Students []string `mapstructure:"students"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

type LedgerConfig struct {
	Path  string `mapstructure:"path"`
	Fsync bool   `mapstructure:"fsync"`
}

type SheetsConfig struct {
	SheetURL        string        `mapstructure:"sheet_url"`
	Worksheet       string        `mapstructure:"worksheet"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type TeacherConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RateLimitConfig limits submissions per student and logins per address.
type RateLimitConfig struct {
	PerSecond      float64 `mapstructure:"per_second"`
	Burst          int     `mapstructure:"burst"`
	LoginPerSecond float64 `mapstructure:"login_per_second"`
	LoginBurst     int     `mapstructure:"login_burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var serviceAccountKeys = []string{
	"type", "project_id", "private_key_id", "private_key", "client_email", "client_id",
	"auth_uri", "token_uri", "auth_provider_x509_cert_url", "client_x509_cert_url", "universe_domain",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("ledger.path", "data/submissions.tsv")
	v.SetDefault("ledger.fsync", false)
	v.SetDefault("sheets.sheet_url", "")
	v.SetDefault("sheets.worksheet", "")
	v.SetDefault("sheets.credentials_file", "")
	v.SetDefault("sheets.timeout", 5*time.Second)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 8*time.Hour)
	v.SetDefault("teacher.username", "")
	v.SetDefault("teacher.password", "")
	v.SetDefault("database.path", "data/classroom.db")
	v.SetDefault("rate_limit.per_second", middleware.DefaultSubmitRate)
	v.SetDefault("rate_limit.burst", middleware.DefaultSubmitBurst)
	v.SetDefault("rate_limit.login_per_second", middleware.DefaultLoginRate)
	v.SetDefault("rate_limit.login_burst", middleware.DefaultLoginBurst)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("students", []string{"Soren", "Ayushi"})
	for _, k := range serviceAccountKeys {
		v.SetDefault("gcp_service_account."+k, "")
	}
}

// LoadConfig reads config.{yaml,toml,json} from path (or path/config), a
// .env file in the working directory, and CLASSLOG_* environment variables,
// in increasing order of precedence. CLASSLOG_CONFIG names an explicit file.
func LoadConfig(path string) (*Config, error) {
	// .env 파일은 선택 사항
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if file := os.Getenv("CLASSLOG_CONFIG"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(path)
		v.AddConfigPath(filepath.Join(path, "config"))
	}

	v.SetEnvPrefix("CLASSLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Google 표준 환경 변수도 허용
	v.BindEnv("sheets.credentials_file", "CLASSLOG_SHEETS_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS")
	v.BindEnv("sheets.sheet_url", "CLASSLOG_SHEETS_SHEET_URL", "SHEET_URL")
	v.BindEnv("auth.jwt_secret", "CLASSLOG_AUTH_JWT_SECRET", "JWT_SECRET_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("LoadConfig(): failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("LoadConfig(): failed to decode config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDebug() bool {
	return c.Server.Mode == "debug"
}

func (c *Config) GetAddr() string {
	return ":" + c.Server.Port
}

// ServiceAccount resolves remote credentials: a key file wins over the inline
// gcp_service_account table. nil means the mirror stays disabled.
func (c *Config) ServiceAccount() (*sheets.ServiceAccount, error) {
	if c.Sheets.CredentialsFile != "" {
		return sheets.LoadServiceAccountFile(c.Sheets.CredentialsFile)
	}
	if c.GCP.Present() {
		sa := c.GCP
		return &sa, nil
	}
	return nil, nil
}

// MirrorConfig builds the mirror configuration. A credential error leaves the
// mirror disabled and is returned for logging.
func (c *Config) MirrorConfig() (sheets.Config, error) {
	sa, err := c.ServiceAccount()
	return sheets.Config{
		SheetURL:    c.Sheets.SheetURL,
		Worksheet:   c.Sheets.Worksheet,
		Credentials: sa,
	}, err
}
