// Package config loads lazykit configuration.
//
// Load uses Viper to read a config.yml, then applies a .env file (loaded with
// godotenv) and LAZYKIT_ prefixed environment variables on top:
//
//	var cfg config.RuntimeConfig
//	if err := config.Load("lazykit", &cfg); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// LAZYKIT_RETRY_MAX_ATTEMPTS=5 overrides retry.max_attempts.
package config
