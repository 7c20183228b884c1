// Config loading for the larder CLI.
package main

import (
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"
	configDir  = ".larder"

	// Config keys.
	cfgKeyStore  = "store"
	cfgKeySchema = "schema"

	// Default store document path.
	defaultStorePath = "store.html"
)

// loadConfig reads .larder/config.yaml from the working directory using
// Viper. A missing config file is not an error; defaults apply.
func loadConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyStore, defaultStorePath)
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("larder")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}
