package config

import (
	// 外部依赖
	"fmt"
	"os"

	defaults "github.com/creasty/defaults"
)

type GlobalConfig struct {
	Database Database `mapstructure:",squash"`
	Redis    Redis    `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	OAuth2   OAuth2   `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
	RPC      RPC      `mapstructure:",squash"`
	Log      Log      `mapstructure:",squash"`
	Trace    Trace    `mapstructure:",squash"`
	Media    Media    `mapstructure:",squash"`

	dynamic *DynamicConfig
}

var config = &GlobalConfig{}

func init() {
	if err := defaults.Set(config); err != nil {
		fmt.Printf("set default err: %+v", err)
		os.Exit(1)
	}
}

func Global() *GlobalConfig {
	return config
}
