package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	AdPlatform AdPlatform `mapstructure:",squash"`
	Sync       Sync       `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
}

type App struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// AdPlatform contém o endereço e as credenciais da API de anúncios
type AdPlatform struct {
	URL      string `mapstructure:"ad_platform_api_url"`
	Email    string `mapstructure:"ad_platform_email"`
	Password string `mapstructure:"ad_platform_password"`
}

type Sync struct {
	PageSize        int           `mapstructure:"sync_page_size"`
	CampaignTimeout time.Duration `mapstructure:"sync_campaign_timeout"`
	ExitOnFailure   bool          `mapstructure:"sync_exit_on_failure"`
	CronEnabled     bool          `mapstructure:"sync_cron_enabled"`
	CronSchedule    string        `mapstructure:"sync_cron"`
}

// Server configura o servidor HTTP administrativo, desligado por padrão
type Server struct {
	Enabled    bool   `mapstructure:"server_enabled"`
	Host       string `mapstructure:"server_host"`
	Port       string `mapstructure:"server_port"`
	AdminToken string `mapstructure:"server_admin_token"`
}

func SetDefaults() {
	viper.SetDefault("AD_PLATFORM_API_URL", "http://localhost:3001")
	viper.SetDefault("AD_PLATFORM_EMAIL", "")
	viper.SetDefault("AD_PLATFORM_PASSWORD", "")

	viper.SetDefault("SYNC_PAGE_SIZE", 10)                   // campanhas por página
	viper.SetDefault("SYNC_CAMPAIGN_TIMEOUT", 2*time.Second) // limite por chamada de sync
	viper.SetDefault("SYNC_EXIT_ON_FAILURE", false)          // mantém exit 0 em qualquer resultado
	viper.SetDefault("SYNC_CRON_ENABLED", false)             // execução única por padrão
	viper.SetDefault("SYNC_CRON", "0 * * * *")               // a cada hora quando habilitado

	viper.SetDefault("SERVER_ENABLED", false)
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ADMIN_TOKEN", "")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("config: using environment loaded by godotenv (viper could not read .env): ", err)
	} else {
		logrus.Debug("config: .env read by viper")
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.Sync.PageSize <= 0 {
		logrus.WithField("page_size", config.Sync.PageSize).Warn("config: invalid page size, using 10")
		config.Sync.PageSize = 10
	}

	if config.Sync.CampaignTimeout <= 0 {
		logrus.WithField("campaign_timeout", config.Sync.CampaignTimeout).Warn("config: invalid campaign timeout, using 2s")
		config.Sync.CampaignTimeout = 2 * time.Second
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: could not get current directory: ", err)
		return
	}

	// Diretório atual e até dois diretórios acima
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Debug("config: .env loaded from ", location)
			return
		}
	}

	logrus.Debug("config: no .env file found, using process environment")
}
