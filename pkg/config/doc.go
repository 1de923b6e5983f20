// Package config loads typed configuration structs from the process
// environment.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: a `.env`
// file in the working directory is read once (missing files are fine), then
// env tags on the target struct are parsed. Load caches one copy per struct
// type so every package can ask for its own Config without re-parsing.
//
//	type Config struct {
//		Addr    string        `env:"HTTP_ADDR" envDefault:":5000"`
//		Timeout time.Duration `env:"MAIL_SEND_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Parse skips the cache and is what tests use after t.Setenv. LoadEnv reads
// additional dotenv files (for example `.env.local`) before the first Load.
package config
