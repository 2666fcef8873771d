package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

const (
	SecureDirName  = "FinWise"
	SecureFileName = ".finwise_db_credentials"
	LegacyFileName = "db_keyfile"

	EnvDatabaseURL     = "DATABASE_URL"
	EnvDatabaseKeyfile = "DATABASE_KEYFILE"
)

var (
	// ErrConfiguration means no credential source produced a descriptor.
	ErrConfiguration = errors.New("database credentials not configured")
	// ErrMalformedCredentials means a keyfile lacked a username or password.
	ErrMalformedCredentials = errors.New("malformed credentials")
	// ErrSetupDeclined means the user refused to overwrite existing credentials.
	ErrSetupDeclined = errors.New("credential setup declined")
)

// Source identifies where a descriptor was resolved from.
type Source string

const (
	SourceSecureKeyfile Source = "secure_keyfile"
	SourceEnvKeyfile    Source = "env_keyfile"
	SourceLegacyKeyfile Source = "legacy_keyfile"
	SourceEnvURL        Source = "env_url"
)

// Descriptor is a resolved connection URL plus the source it came from.
type Descriptor struct {
	URL    string
	Source Source
}

// Redacted returns the URL with the password masked, safe for logs.
func (d Descriptor) Redacted() string {
	u, err := url.Parse(d.URL)
	if err != nil || u.Scheme == "" {
		return "<redacted>"
	}
	return u.Redacted()
}

// Store locates and manages database credentials on the local machine.
type Store struct {
	host   Host
	logger zerolog.Logger
}

// NewStore creates a credential store reading from host.
func NewStore(host Host, logger zerolog.Logger) *Store {
	return &Store{
		host:   host,
		logger: logger.With().Str("component", "credentials").Logger(),
	}
}

// SecureDir is <home>/FinWise.
func (s *Store) SecureDir() (string, error) {
	home, err := s.host.HomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, SecureDirName), nil
}

// SecurePath is the canonical keyfile location.
func (s *Store) SecurePath() (string, error) {
	dir, err := s.SecureDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SecureFileName), nil
}

// LegacyPath is the deprecated keyfile in the working directory.
func (s *Store) LegacyPath() (string, error) {
	wd, err := s.host.WorkDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return filepath.Join(wd, LegacyFileName), nil
}

// Resolve walks the credential sources in priority order and returns the
// first one that yields a descriptor:
//
//  1. the secure keyfile under the home directory
//  2. the keyfile named by DATABASE_KEYFILE
//  3. the legacy db_keyfile in the working directory (deprecated)
//  4. DATABASE_URL, used verbatim
//
// Absent sources are skipped silently, unreadable or malformed ones are
// skipped with a warning. When nothing resolves the error wraps
// ErrConfiguration together with whatever problems were seen.
func (s *Store) Resolve() (Descriptor, error) {
	var problems []error

	try := func(source Source, path string, warnIfMissing bool) (Descriptor, bool) {
		creds, err := readKeyfile(path)
		if err == nil {
			s.warnIfExposed(source, path)
			return Descriptor{URL: creds.URL(), Source: source}, true
		}

		if errors.Is(err, fs.ErrNotExist) && !warnIfMissing {
			return Descriptor{}, false
		}

		s.logger.Warn().
			Err(err).
			Str("source", string(source)).
			Str("path", path).
			Msg("skipping credential source")
		problems = append(problems, fmt.Errorf("%s %s: %w", source, path, err))
		return Descriptor{}, false
	}

	if path, err := s.SecurePath(); err != nil {
		s.logger.Warn().Err(err).Msg("secure credential location unavailable")
		problems = append(problems, err)
	} else if d, ok := try(SourceSecureKeyfile, path, false); ok {
		return d, nil
	}

	if path, ok := s.host.LookupEnv(EnvDatabaseKeyfile); ok && strings.TrimSpace(path) != "" {
		if d, ok := try(SourceEnvKeyfile, strings.TrimSpace(path), true); ok {
			return d, nil
		}
	}

	if path, err := s.LegacyPath(); err == nil {
		if d, ok := try(SourceLegacyKeyfile, path, false); ok {
			s.logger.Warn().
				Str("path", path).
				Msg("using deprecated db_keyfile from working directory; run 'finwise setup-db' to move credentials to secure storage")
			return d, nil
		}
	}

	if raw, ok := s.host.LookupEnv(EnvDatabaseURL); ok && strings.TrimSpace(raw) != "" {
		return Descriptor{URL: strings.TrimSpace(raw), Source: SourceEnvURL}, nil
	}

	return Descriptor{}, errors.Join(append([]error{
		fmt.Errorf("%w: run 'finwise setup-db' or set %s", ErrConfiguration, EnvDatabaseURL),
	}, problems...)...)
}

func (s *Store) warnIfExposed(source Source, path string) {
	if runtime.GOOS == "windows" {
		return
	}
	info, err := s.host.Stat(path)
	if err != nil {
		return
	}
	if info.Mode().Perm()&0o077 != 0 {
		s.logger.Warn().
			Str("source", string(source)).
			Str("path", path).
			Str("mode", info.Mode().Perm().String()).
			Msg("credential file is readable by other users")
	}
}

// Status describes the on-disk credential state.
type Status struct {
	Dir          string
	Path         string
	Exists       bool
	LegacyPath   string
	LegacyExists bool
}

// Check reports where the secure keyfile lives and whether it and the
// legacy keyfile exist. It never reads file contents.
func (s *Store) Check() (Status, error) {
	dir, err := s.SecureDir()
	if err != nil {
		return Status{}, err
	}

	status := Status{
		Dir:    dir,
		Path:   filepath.Join(dir, SecureFileName),
		Exists: s.fileExists(filepath.Join(dir, SecureFileName)),
	}

	if legacy, err := s.LegacyPath(); err == nil {
		status.LegacyPath = legacy
		status.LegacyExists = s.fileExists(legacy)
	}

	return status, nil
}

func (s *Store) fileExists(path string) bool {
	info, err := s.host.Stat(path)
	return err == nil && !info.IsDir()
}
