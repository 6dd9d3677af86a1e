package config

import (
	"fmt"

	"simplebanking/internal/model"

	"github.com/spf13/viper"
)

type Config struct {
	API      API      `mapstructure:"api"`
	Database Database `mapstructure:"database"`
	Bank     Bank     `mapstructure:"bank"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Database struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type Bank struct {
	// Currencies provisioned for every new user, one account each.
	Currencies []model.Currency `mapstructure:"currencies"`
	// InitialBalance seeds each provisioned account, in minor units.
	InitialBalance int64 `mapstructure:"initial_balance"`
	// AdminToken authenticates the administrator principal.
	AdminToken string `mapstructure:"admin_token"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if len(cfg.Bank.Currencies) == 0 {
		cfg.Bank.Currencies = model.DefaultCurrencies
	}

	return cfg, nil
}
