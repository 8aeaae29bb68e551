package internal

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type MicroSQLConfig struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		Snapshot string `mapstructure:"snapshot"`
	} `mapstructure:"storage"`

	Server struct {
		Port  int  `mapstructure:"port"`
		Debug bool `mapstructure:"debug"`
	} `mapstructure:"server"`
}

func LoadConfig(path string) (*MicroSQLConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app_name", "microsql")
	v.SetDefault("storage.snapshot", "microsql.json")
	v.SetDefault("server.port", 8866)

	// a missing config file just means defaults
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg MicroSQLConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
