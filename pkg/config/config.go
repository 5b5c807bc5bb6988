// Package config loads application configuration from the environment.
package config

// Server holds the HTTP listener settings.
type Server struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// DB holds the database settings. An empty URL selects the in-memory event
// store and read model, which is only suitable for development.
type DB struct {
	Url string `envconfig:"DATABASE_URL"`
}

// Log holds the logging settings.
type Log struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// App is the root application configuration.
type App struct {
	Env    string `envconfig:"ENV" default:"development"`
	Server Server `envconfig:"SERVER"`
	DB     DB     `envconfig:"DB"`
	Log    Log    `envconfig:"LOG"`
}
