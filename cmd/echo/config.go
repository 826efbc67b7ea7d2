package main

const (
	defaultBindHost = "0.0.0.0"
	defaultPort     = 5000
)

// echoConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the entrypoint.
type echoConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Addr string `mapstructure:"-"` // derived from host and port
}
