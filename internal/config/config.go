package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/krobus00/invest-orders/internal/constant"
	"github.com/spf13/viper"
)

var (
	ServiceName    = "invest-orders"
	ServiceVersion = "dev"
)

var (
	Env *EnvConfig
)

// envPrefix scopes environment overrides, e.g. INVEST_ORDERS_API_TOKEN.
const envPrefix = "invest_orders"

type EnvConfig struct {
	Env                     string        `mapstructure:"env"`
	Log                     LogConfig     `mapstructure:"log"`
	GracefulShutdownTimeout time.Duration `mapstructure:"graceful_shutdown_timeout"`
	API                     APIConfig     `mapstructure:"api"`
	AccountID               string        `mapstructure:"account_id"`
}

type LogConfig struct {
	ShowCaller bool   `mapstructure:"show_caller"`
	LogLevel   string `mapstructure:"log_level"`
}

// APIConfig describes how to reach the remote orders service.
type APIConfig struct {
	Target   string        `mapstructure:"target"`
	Token    string        `mapstructure:"token"`
	AppName  string        `mapstructure:"app_name"`
	Readonly bool          `mapstructure:"readonly"`
	Sandbox  bool          `mapstructure:"sandbox"`
	Insecure bool          `mapstructure:"insecure"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ResolvedTarget falls back to the public endpoint matching the sandbox flag.
func (c APIConfig) ResolvedTarget() string {
	if target := strings.TrimSpace(c.Target); target != "" {
		return target
	}
	if c.Sandbox {
		return constant.DefaultSandboxTarget
	}
	return constant.DefaultProductionTarget
}

func setDefaults() {
	viper.SetDefault("env", constant.DevelopmentEnvironment)
	viper.SetDefault("log.show_caller", false)
	viper.SetDefault("log.log_level", "info")
	viper.SetDefault("graceful_shutdown_timeout", 5*time.Second)
	viper.SetDefault("api.target", "")
	viper.SetDefault("api.token", "")
	viper.SetDefault("api.app_name", constant.DefaultAppName)
	viper.SetDefault("api.readonly", false)
	viper.SetDefault("api.sandbox", false)
	viper.SetDefault("api.insecure", false)
	viper.SetDefault("api.timeout", constant.DefaultCallTimeout)
	viper.SetDefault("account_id", "")
}

func LoadConfig(configPath string) error {
	viper.Reset()
	setDefaults()

	configPath = strings.TrimSpace(configPath)
	if configPath == "" {
		viper.SetConfigName("config")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	} else {
		ext := strings.ToLower(filepath.Ext(configPath))
		if ext == ".yml" || ext == ".yaml" {
			viper.SetConfigFile(configPath)
		} else {
			viper.SetConfigName(filepath.Base(configPath))
			viper.SetConfigType("yml")
			configDir := filepath.Dir(configPath)
			if configDir == "." || configDir == "" {
				viper.AddConfigPath(".")
			} else {
				viper.AddConfigPath(configDir)
			}
		}
	}

	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	err = viper.Unmarshal(&Env)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	return nil
}
