// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/postcard/core/config"
//
//	type RenderConfig struct {
//		Verbose   bool   `env:"POSTCARD_VERBOSE" envDefault:"false"`
//		OutputDir string `env:"POSTCARD_OUTPUT_DIR" envDefault:"./out"`
//	}
//
//	func main() {
//		var cfg RenderConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 RenderConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 RenderConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type PostmarkConfig struct {
//		ServerToken string `env:"POSTMARK_SERVER_TOKEN,required"`
//	}
//
//	type SMTPConfig struct {
//		Host string `env:"SMTP_HOST,required"`
//		Port int    `env:"SMTP_PORT" envDefault:"587"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&PostmarkConfig{})
//	config.MustLoad(&SMTPConfig{})
package config
