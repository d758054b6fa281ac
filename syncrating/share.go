package syncrating

import (
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hirochachacha/go-smb2"
)

// Credentials authenticate against the SMB shares.
type Credentials struct {
	Username string
	Password string
	Domain   string
}

// Share is the subset of file operations the sync needs. A local
// directory satisfies it too, which keeps the pipeline testable without
// a Windows file server.
type Share interface {
	ReadDir(name string) ([]fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
	MkdirAll(name string) error
	Close() error
}

// Location is a parsed share URL ("smb://host/share/path") or a local
// directory path.
type Location struct {
	Host      string
	ShareName string
	Path      string
}

// ParseLocation splits a share URL into its parts. Anything without an
// smb:// scheme is treated as a local directory.
func ParseLocation(raw string) (Location, error) {
	if !strings.HasPrefix(raw, "smb://") {
		return Location{Path: raw}, nil
	}
	trimmed := strings.TrimPrefix(raw, "smb://")
	parts := strings.SplitN(trimmed, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Location{}, fmt.Errorf("malformed share URL %q", raw)
	}
	location := Location{Host: parts[0], ShareName: parts[1]}
	if len(parts) == 3 {
		location.Path = parts[2]
	}
	return location, nil
}

// Connect opens the location: a dialed SMB share, or a local directory.
func (l Location) Connect(creds Credentials) (Share, error) {
	if l.Host == "" {
		return &dirShare{root: l.Path}, nil
	}

	conn, err := net.Dial("tcp", net.JoinHostPort(l.Host, "445"))
	if err != nil {
		return nil, fmt.Errorf("unable to reach %s: %w", l.Host, err)
	}

	dialer := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     creds.Username,
			Password: creds.Password,
			Domain:   creds.Domain,
		},
	}
	session, err := dialer.Dial(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to authenticate to %s: %w", l.Host, err)
	}
	mounted, err := session.Mount(l.ShareName)
	if err != nil {
		session.Logoff()
		conn.Close()
		return nil, fmt.Errorf("unable to mount %s on %s: %w", l.ShareName, l.Host, err)
	}
	return &smbShare{conn: conn, session: session, share: mounted, prefix: l.Path}, nil
}

type dirShare struct {
	root string
}

func (d *dirShare) join(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(name))
}

func (d *dirShare) ReadDir(name string) ([]fs.FileInfo, error) {
	entries, err := os.ReadDir(d.join(name))
	if err != nil {
		return nil, err
	}
	infos := make([]fs.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (d *dirShare) Open(name string) (io.ReadCloser, error) {
	return os.Open(d.join(name))
}

func (d *dirShare) Create(name string) (io.WriteCloser, error) {
	return os.Create(d.join(name))
}

func (d *dirShare) MkdirAll(name string) error {
	return os.MkdirAll(d.join(name), 0o755)
}

func (d *dirShare) Close() error { return nil }

type smbShare struct {
	conn    net.Conn
	session *smb2.Session
	share   *smb2.Share
	prefix  string
}

func (s *smbShare) join(name string) string {
	return path.Join(s.prefix, name)
}

func (s *smbShare) ReadDir(name string) ([]fs.FileInfo, error) {
	return s.share.ReadDir(s.join(name))
}

func (s *smbShare) Open(name string) (io.ReadCloser, error) {
	return s.share.Open(s.join(name))
}

func (s *smbShare) Create(name string) (io.WriteCloser, error) {
	return s.share.Create(s.join(name))
}

func (s *smbShare) MkdirAll(name string) error {
	return s.share.MkdirAll(s.join(name), 0o755)
}

func (s *smbShare) Close() error {
	s.share.Umount()
	s.session.Logoff()
	return s.conn.Close()
}
