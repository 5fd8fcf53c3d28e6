package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Серверные настройки
	RunAddr     string `env:"RUN_ADDRESS"`
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Учётные данные администратора (seed для bootstrap)
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Хранилище картинок: "local" (диск) или "s3" (MinIO)
	AssetBackend string `env:"ASSET_BACKEND"`
	UploadDir    string `env:"UPLOAD_DIR"`
	StaticPrefix string `env:"STATIC_PREFIX"`

	// Настройки S3/MinIO (нужны только при ASSET_BACKEND=s3)
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3UseSSL    bool   `env:"S3_USE_SSL"`

	// Прочее
	MembersFile     string `env:"MEMBERS_FILE"`
	TemplatesDir    string `env:"TEMPLATES_DIR"`
	MaxUploadSizeMB int    `env:"MAX_UPLOAD_SIZE_MB"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.RunAddr, "a", cfg.RunAddr, "адрес и порт сервера")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.AdminUsername, "admin-user", cfg.AdminUsername, "логин администратора")
	flag.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "пароль администратора (seed)")
	flag.StringVar(&cfg.AssetBackend, "asset-backend", cfg.AssetBackend, "хранилище картинок: local|s3")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "каталог загрузок (local backend)")
	flag.StringVar(&cfg.MembersFile, "members-file", cfg.MembersFile, "путь к JSON со списком команды")
	flag.Parse()

	// Defaults
	// валидируем RunAddr: должен быть "host:port", иначе дефолт
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.RunAddr) {
		cfg.RunAddr = ":8080"
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "database.db"
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin"
	}
	if cfg.AssetBackend != "s3" {
		cfg.AssetBackend = "local"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "static/uploads"
	}
	if cfg.StaticPrefix == "" {
		cfg.StaticPrefix = "/static/uploads"
	}
	if cfg.MembersFile == "" {
		cfg.MembersFile = "instance/members.json"
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = "templates"
	}
	if cfg.MaxUploadSizeMB <= 0 {
		cfg.MaxUploadSizeMB = 16
	}

	return cfg
}
