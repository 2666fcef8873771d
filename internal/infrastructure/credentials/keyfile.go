package credentials

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	descriptorScheme   = "postgres"
	descriptorHost     = "localhost"
	descriptorDatabase = "finance_wise"

	keyUsername = "username"
	keyPassword = "password"
)

// Credentials is the secret material read from a keyfile.
type Credentials struct {
	Username string
	Password string
}

// Validate checks both fields are present and fit on a single keyfile line.
func (c Credentials) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("%w: missing %s", ErrMalformedCredentials, keyUsername)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: missing %s", ErrMalformedCredentials, keyPassword)
	}
	if strings.ContainsAny(c.Username+c.Password, "\r\n") {
		return fmt.Errorf("%w: values must not contain line breaks", ErrMalformedCredentials)
	}
	return nil
}

// URL builds the connection descriptor. Only the user and password vary;
// host and database name are fixed.
func (c Credentials) URL() string {
	u := url.URL{
		Scheme: descriptorScheme,
		User:   url.UserPassword(c.Username, c.Password),
		Host:   descriptorHost,
		Path:   "/" + descriptorDatabase,
	}
	return u.String()
}

// ParseKeyfile reads line-oriented key=value text. Lines and values are
// trimmed, blank lines and unknown keys are ignored, order is irrelevant.
func ParseKeyfile(r io.Reader) (Credentials, error) {
	var creds Credentials

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		switch strings.TrimSpace(key) {
		case keyUsername:
			creds.Username = strings.TrimSpace(value)
		case keyPassword:
			creds.Password = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return Credentials{}, fmt.Errorf("failed to read keyfile: %w", err)
	}

	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}

	return creds, nil
}

func readKeyfile(path string) (Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return Credentials{}, err
	}
	defer f.Close()

	return ParseKeyfile(f)
}

// writeKeyfile replaces path atomically with an owner-only file.
func writeKeyfile(path string, creds Credentials) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		return fmt.Errorf("failed to restrict %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp keyfile: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	content := fmt.Sprintf("%s=%s\n%s=%s\n", keyUsername, creds.Username, keyPassword, creds.Password)
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write keyfile: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync keyfile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close keyfile: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to restrict keyfile: %w", err)
	}

	return os.Rename(tmpName, path)
}
