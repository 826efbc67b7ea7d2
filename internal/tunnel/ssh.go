package tunnel

import (
	"fmt"
	"time"

	"golang.org/x/crypto/ssh"
)

// SSHConfig holds the connection parameters for the remote host. Only
// private-key authentication is supported.
type SSHConfig struct {
	User           string
	Addr           string // host:port of the SSH server
	PrivateKeyPath string
}

// DialSSH opens an authenticated SSH connection. The returned client dials
// TCP addresses on the remote side and satisfies Dialer.
func DialSSH(cfg SSHConfig) (*ssh.Client, error) {
	if cfg.User == "" {
		return nil, fmt.Errorf("ssh user is empty")
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("ssh address is empty")
	}

	signer, err := LoadSigner(cfg.PrivateKeyPath)
	if err != nil {
		return nil, err
	}

	clientCfg := &ssh.ClientConfig{
		User: cfg.User,
		Auth: []ssh.AuthMethod{ssh.PublicKeys(signer)},
		// The remote host's key is not verified; access is gated on the
		// private key alone.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         15 * time.Second,
	}

	client, err := ssh.Dial("tcp", cfg.Addr, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Addr, err)
	}
	return client, nil
}
