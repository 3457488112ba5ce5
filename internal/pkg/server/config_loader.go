package server

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/lectern-ai/lectern/pkg/logger"
)

// LoadConfig reads the configuration file into viper. When cfg is empty, the
// well-known locations are searched for <defaultName>.yaml: the working
// directory, $HOME/.lectern, and /etc/lectern.
func LoadConfig(cfg string, defaultName string) {
	if cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".lectern"))
		}
		viper.AddConfigPath("/etc/lectern")
		viper.SetConfigName(defaultName)
	}

	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("LECTERN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err != nil {
		logger.Debug("[Config] no config file loaded: %v", err)
		return
	}
	logger.Info("[Config] using config file %s", viper.ConfigFileUsed())
}
