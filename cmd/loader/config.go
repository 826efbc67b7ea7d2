package main

const defaultSourceFile = "trace.json"

// loaderConfig is internal runtime configuration, populated once at startup
// from the process environment.
type loaderConfig struct {
	TableID    string `mapstructure:"table-id"`
	SourceFile string `mapstructure:"source-file"`
	Project    string `mapstructure:"project-id"`
}
