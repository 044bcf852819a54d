package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml"

	"zyracss/common"
	"zyracss/zyra"
)

// ServerConfig holds the HTTP collaborator settings.
type ServerConfig struct {
	Host              string `json:"host" toml:"host" validate:"required"`
	Port              int    `json:"port" toml:"port" validate:"gte=1,lte=65535"`
	RequestsPerSecond int    `json:"requests_per_second" toml:"requests_per_second" validate:"gte=0"`
	RequestsPerMinute int    `json:"requests_per_minute" toml:"requests_per_minute" validate:"gte=0"`
	TimeoutSeconds    int    `json:"timeout_seconds" toml:"timeout_seconds" validate:"gte=1"`
	SanitizeHTML      bool   `json:"sanitize_html" toml:"sanitize_html"`
}

// Config is the full collaborator configuration: server settings plus the
// engine configuration passed through to zyra.New.
type Config struct {
	Env    string       `json:"env" toml:"env"`
	Server ServerConfig `json:"server" toml:"server"`
	Engine zyra.Config  `json:"engine" toml:"engine"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Env: "development",
		Server: ServerConfig{
			Host:              "localhost",
			Port:              8080,
			RequestsPerSecond: 12,
			RequestsPerMinute: 240,
			TimeoutSeconds:    30,
			SanitizeHTML:      false,
		},
		Engine: zyra.DefaultConfig(),
	}
}

// Load merges defaults, an optional zyracss.toml, then environment
// variables, and validates the result. A validation failure surfaces as
// VALIDATION_FAILED so collaborators can map it to `invalid-config`.
func Load() (Config, *common.Error) {
	common.LoadDotEnv()
	cfg := Default()

	path := common.GetEnv("ZYRACSS_CONFIG", "zyracss.toml")
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, common.NewError(common.CodeValidationFailed,
				"failed to parse %s: %v", path, err)
		}
		common.Config("Loaded configuration from %s", path)
	}

	cfg.Env = common.GetEnv("ENV", cfg.Env)
	cfg.Server.Host = common.GetEnv("HOST", cfg.Server.Host)
	cfg.Server.Port = common.GetEnvInt("PORT", cfg.Server.Port)
	cfg.Server.RequestsPerSecond = common.GetEnvInt("RATE_LIMIT_REQUESTS_PER_SECOND", cfg.Server.RequestsPerSecond)
	cfg.Server.RequestsPerMinute = common.GetEnvInt("RATE_LIMIT_REQUESTS_PER_MINUTE", cfg.Server.RequestsPerMinute)
	cfg.Server.SanitizeHTML = common.GetEnvBool("SANITIZE_HTML", cfg.Server.SanitizeHTML)
	cfg.Engine.Cache = common.GetEnvBool("ENGINE_CACHE", cfg.Engine.Cache)
	cfg.Engine.Minify = common.GetEnvBool("ENGINE_MINIFY", cfg.Engine.Minify)

	if err := validate.Struct(cfg); err != nil {
		return cfg, common.NewError(common.CodeValidationFailed,
			"invalid configuration: %s", validationMessage(err))
	}
	return cfg, nil
}

func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return errs[0].Namespace() + " failed " + errs[0].Tag() + " validation"
	}
	return err.Error()
}
