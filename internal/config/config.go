package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/stationone-hq/stationone-menu/pkg/deployments"
	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIBaseURL                 string        `mapstructure:"api_base_url"`
	ImageBaseURL               string        `mapstructure:"image_base_url"`
	ProductsBySubCategoryRoute string        `mapstructure:"products_by_subcategory_route"`
	HTTPTimeoutSeconds         int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout                time.Duration `mapstructure:"-"`
	DeploymentsFile            string        `mapstructure:"deployments_file"`
	Deployment                 string        `mapstructure:"deployment"`

	PublishersFile         string        `mapstructure:"publishers_file"`
	HarvestIntervalSeconds int64         `mapstructure:"harvest_interval"`
	HarvestInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "stationone-menu")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "https://api.stationonelounge.com/api/v1")
	v.SetDefault("image_base_url", "https://api.stationonelounge.com/uploads/")
	v.SetDefault("products_by_subcategory_route", string(menuapi.RouteCat))
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("deployments_file", "")
	v.SetDefault("deployment", "")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("harvest_interval", 900) // seconds
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/menu.db")
	v.SetDefault("storage_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.APIBaseURL) == "" && strings.TrimSpace(cfg.DeploymentsFile) == "" {
		return nil, fmt.Errorf("api_base_url is required when no deployments_file is set")
	}
	if _, err := menuapi.ParseRouteStyle(cfg.ProductsBySubCategoryRoute); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must not be negative)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.HarvestIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid harvest_interval (must be positive seconds)")
	}
	cfg.HarvestInterval = time.Duration(cfg.HarvestIntervalSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}

// ClientConfig resolves the menu API deployment to talk to: the named entry
// of the deployments file when one is selected, else the env-level URLs.
func (c *Config) ClientConfig() (deployments.Deployment, menuapi.Config, error) {
	name := strings.TrimSpace(c.Deployment)
	if name == "" || strings.TrimSpace(c.DeploymentsFile) == "" {
		if name != "" {
			return deployments.Deployment{}, menuapi.Config{}, fmt.Errorf("deployment %q selected but deployments_file is not set", name)
		}
		dep := deployments.Deployment{
			ID:                         "default",
			Name:                       c.AppName,
			BaseURL:                    c.APIBaseURL,
			ImageBaseURL:               c.ImageBaseURL,
			ProductsBySubCategoryRoute: c.ProductsBySubCategoryRoute,
		}
		return dep, dep.ClientConfig(c.HTTPTimeout), nil
	}

	reg, err := deployments.LoadRegistry(c.DeploymentsFile)
	if err != nil {
		return deployments.Deployment{}, menuapi.Config{}, fmt.Errorf("load deployments registry: %w", err)
	}
	dep, ok := reg.ByID(name)
	if !ok {
		return deployments.Deployment{}, menuapi.Config{}, fmt.Errorf("deployment %q not found in %s", name, c.DeploymentsFile)
	}
	return dep, dep.ClientConfig(c.HTTPTimeout), nil
}
