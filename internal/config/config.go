package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Gateway: GatewayConfig{
			Port: 18920,
			Bind: "loopback",
			Auth: GatewayAuth{
				Mode: "token",
			},
		},
		Coordinator: CoordinatorConfig{
			ChunkMode: "cumulative",
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
