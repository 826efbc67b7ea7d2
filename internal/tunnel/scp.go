package tunnel

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/ssh"
)

// scpSession is the subset of ssh.Session used by the scp sender.
type scpSession interface {
	StdinPipe() (io.WriteCloser, error)
	Start(cmd string) error
	Wait() error
}

// SendFile copies contents to dirname/basename on the remote host using the
// scp sink protocol.
func SendFile(client *ssh.Client, dirname, basename string, contents io.Reader, size int64, perm os.FileMode) error {
	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("opening scp session: %w", err)
	}
	defer session.Close()
	return sendFileTo(session, dirname, basename, contents, size, perm)
}

func sendFileTo(session scpSession, dirname, basename string, contents io.Reader, size int64, perm os.FileMode) error {
	stdin, err := session.StdinPipe()
	if err != nil {
		return err
	}

	if err := session.Start(fmt.Sprintf("scp -t %s", dirname)); err != nil {
		return err
	}

	// Sink protocol: C<perm> <len> <name>, the file bytes, then a zero byte.
	if _, err := fmt.Fprintf(stdin, "C0%o %d %s\n", perm, size, basename); err != nil {
		return err
	}
	if _, err := io.Copy(stdin, contents); err != nil {
		return err
	}
	if _, err := stdin.Write([]byte{0}); err != nil {
		return err
	}
	if err := stdin.Close(); err != nil {
		return err
	}
	return session.Wait()
}
