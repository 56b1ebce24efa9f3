// Package config loads convokit configuration.
//
// LoadConfig reads a YAML file and an optional .env file with Viper, binds
// environment variables to nested keys, and unmarshals into the target
// struct. Load does the same for the application Config and then applies
// defaults and validates every section.
//
//	cfg, err := config.Load(config.WithConfigFile("config.yml"))
//
// Without an explicit file the resolver honours CONVOKIT_CONFIG, then
// searches convokit.yml, config.yml, cmd/convokit/config.yml and the user
// config directory. Environment variables override file values using
// underscore-separated paths (SERVER_PORT, DETECT_GAP_LOWER_BOUND); the
// CONVOKIT_ prefixed form wins over the bare one.
package config
