package providers

import (
	"fmt"
	"leadsdesk/internal/structures"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultRefreshTTL    = 365 * 24 * time.Hour
	defaultAlertCooldown = 5 * time.Hour
	defaultMaxValueSize  = 1 << 20
)

var defaultSlots = []string{"viewedLeads", "viewedEvents", "tokenAlertTime", "followTemplateUpdated"}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("hours.refreshInterval", time.Second)
	viper.SetDefault("cache.ttl", 5*time.Second)

	viper.BindEnv("logger.level", "LEADSDESK_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "LEADSDESK_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "LEADSDESK_CACHE_ENABLED")
	viper.BindEnv("cache.size", "LEADSDESK_CACHE_SIZE")
	viper.BindEnv("hours.refreshInterval", "LEADSDESK_HOURS_REFRESH")
	viper.BindEnv("rateLimit.enabled", "LEADSDESK_RATE_LIMIT_ENABLED")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	applyDefaults(&conf)
	conf.AppName = "LeadsDesk"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyDefaults(conf *structures.Config) {
	if len(conf.Storage.Slots) == 0 {
		conf.Storage.Slots = append([]string(nil), defaultSlots...)
	}
	if conf.Storage.MaxValueSize <= 0 {
		conf.Storage.MaxValueSize = defaultMaxValueSize
	}
	if conf.Tokens.RefreshTTL <= 0 {
		conf.Tokens.RefreshTTL = defaultRefreshTTL
	}
	if conf.Tokens.AlertCooldown <= 0 {
		conf.Tokens.AlertCooldown = defaultAlertCooldown
	}
}
