// Package config resolves settings from flags, TODO_* environment variables
// and an optional .todo.yaml file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Makepad-fr/todolist/internal/store"
)

const (
	KeyStoreDriver = "store.driver"
	KeyStorePath   = "store.path"
	KeyListKey     = "key"
	KeyLogLevel    = "log.level"
	KeyLogFile     = "log.file"
	KeyTheme       = "theme"

	EnvPrefix     = "TODO"
	EnvConfigPath = "TODO_CONFIG_PATH"
	fileName      = ".todo" // .yaml is implicit
)

// Config is the resolved configuration.
type Config struct {
	Store    store.Config
	Key      string
	LogLevel string
	LogFile  string
	Theme    string
	// File is the config file that was read, empty if none.
	File string
}

// Load resolves configuration. explicit, when set, names the config file to
// read and must exist. flags, when non-nil, are bound under their own names
// (store, path, key, log-level, theme) and win over everything else.
func Load(explicit string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyStoreDriver, store.DriverDiskv)
	v.SetDefault(KeyStorePath, "~/.todo.db")
	v.SetDefault(KeyListKey, "todoItems")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTheme, "classic")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			KeyStoreDriver: "store",
			KeyStorePath:   "path",
			KeyListKey:     "key",
			KeyLogLevel:    "log-level",
			KeyTheme:       "theme",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
		if override := os.Getenv(EnvConfigPath); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || explicit != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		Store: store.Config{
			Driver: v.GetString(KeyStoreDriver),
			Path:   v.GetString(KeyStorePath),
		},
		Key:      v.GetString(KeyListKey),
		LogLevel: v.GetString(KeyLogLevel),
		LogFile:  v.GetString(KeyLogFile),
		Theme:    v.GetString(KeyTheme),
		File:     v.ConfigFileUsed(),
	}, nil
}
