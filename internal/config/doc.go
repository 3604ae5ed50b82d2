// Package config defines the ai1900 settings, their defaults and their
// validation. Values are read through viper so that the config file,
// AI1900_* environment variables and command line flags all feed the same
// structure.
package config
