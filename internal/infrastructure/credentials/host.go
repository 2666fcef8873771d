package credentials

import (
	"io/fs"
	"os"
)

// Host is the ambient environment the store reads from. It is injected so
// tests can point the home and working directories at temp dirs and supply
// their own environment and file metadata.
type Host interface {
	HomeDir() (string, error)
	WorkDir() (string, error)
	LookupEnv(key string) (string, bool)
	Stat(name string) (fs.FileInfo, error)
}

// OSHost reads the real process environment.
type OSHost struct{}

// HomeDir returns the current user's home directory.
func (OSHost) HomeDir() (string, error) { return os.UserHomeDir() }

// WorkDir returns the process working directory.
func (OSHost) WorkDir() (string, error) { return os.Getwd() }

// LookupEnv reads a process environment variable.
func (OSHost) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// Stat returns file metadata from the real filesystem.
func (OSHost) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
