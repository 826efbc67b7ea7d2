package main

const (
	defaultBindHost   = "127.0.0.1"
	defaultSSHPort    = 22
	defaultLocalPort  = 1234
	defaultRemoteHost = "localhost"
	defaultRemotePort = 5000
	defaultTraceFile  = "trace.json"
)

// tunnelConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the entrypoint.
type tunnelConfig struct {
	User           string `mapstructure:"user"`
	Host           string `mapstructure:"host"`
	SSHPort        int    `mapstructure:"ssh-port"`
	LocalPort      int    `mapstructure:"local-port"`
	RemoteHost     string `mapstructure:"remote-host"`
	RemotePort     int    `mapstructure:"remote-port"`
	PrivateKeyPath string `mapstructure:"private-key-path"`
	TraceFile      string `mapstructure:"trace-file"`
	PushFile       string `mapstructure:"push-file"`
	PushDir        string `mapstructure:"push-dir"`

	SSHAddr    string `mapstructure:"-"` // derived from host and ssh-port
	LocalAddr  string `mapstructure:"-"`
	RemoteAddr string `mapstructure:"-"`
}
