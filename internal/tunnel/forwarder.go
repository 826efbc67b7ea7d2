package tunnel

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net"
	"sync"
)

// Dialer opens connections on the remote side of the tunnel.
// Both *ssh.Client and *net.Dialer satisfy it.
type Dialer interface {
	Dial(network, addr string) (net.Conn, error)
}

// Forwarder accepts local TCP connections and forwards each one to a fixed
// remote address through a Dialer.
type Forwarder struct {
	localAddr  string
	remoteAddr string
	dialer     Dialer
	listener   net.Listener
	listenAddr string
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	trace      *slog.Logger
}

// NewForwarder creates a forwarder from localAddr to remoteAddr. An empty
// localAddr binds 127.0.0.1:1234.
func NewForwarder(localAddr, remoteAddr string, dialer Dialer) *Forwarder {
	if localAddr == "" {
		localAddr = "127.0.0.1:1234"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Forwarder{
		localAddr:  localAddr,
		remoteAddr: remoteAddr,
		dialer:     dialer,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SetTraceLogger directs one JSON record per forwarded connection to logger.
// Call before Start.
func (f *Forwarder) SetTraceLogger(logger *slog.Logger) {
	f.trace = logger
}

// Start binds the local listener and begins accepting connections.
func (f *Forwarder) Start() error {
	listener, err := net.Listen("tcp", f.localAddr)
	if err != nil {
		return err
	}
	f.listener = listener
	f.listenAddr = listener.Addr().String()

	f.wg.Add(1)
	go f.acceptLoop()
	return nil
}

// Addr returns the bound listen address. Valid after Start.
func (f *Forwarder) Addr() string {
	return f.listenAddr
}

// Stop closes the listener and waits for in-flight connections to finish.
func (f *Forwarder) Stop() error {
	f.cancel()
	var err error
	if f.listener != nil {
		err = f.listener.Close()
	}
	f.wg.Wait()
	return err
}

func (f *Forwarder) acceptLoop() {
	defer f.wg.Done()
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			select {
			case <-f.ctx.Done():
			default:
				log.Printf("tunnel: accept: %v", err)
			}
			return
		}
		f.wg.Add(1)
		go f.forward(conn)
	}
}

// forward pumps bytes both ways until either side closes or the forwarder
// shuts down, then records the connection.
func (f *Forwarder) forward(local net.Conn) {
	defer f.wg.Done()

	remote, err := f.dialer.Dial("tcp", f.remoteAddr)
	if err != nil {
		log.Printf("tunnel: dialing %s: %v", f.remoteAddr, err)
		local.Close()
		return
	}

	var toRemote, fromRemote int64
	done := make(chan struct{}, 2)
	go func() {
		toRemote, _ = io.Copy(remote, local)
		done <- struct{}{}
	}()
	go func() {
		fromRemote, _ = io.Copy(local, remote)
		done <- struct{}{}
	}()

	received := 0
	select {
	case <-done:
		received = 1
	case <-f.ctx.Done():
	}

	// Closing both ends unblocks whichever copy is still running.
	local.Close()
	remote.Close()
	for ; received < 2; received++ {
		<-done
	}

	log.Printf("tunnel: %s -> %s (%d bytes out, %d bytes in)", local.RemoteAddr(), f.remoteAddr, toRemote, fromRemote)
	if f.trace != nil {
		f.trace.Info("connection forwarded",
			"client", local.RemoteAddr().String(),
			"remote", f.remoteAddr,
			"bytes_to_remote", toRemote,
			"bytes_from_remote", fromRemote,
		)
	}
}
