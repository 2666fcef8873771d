package credentials

import (
	"fmt"
	"os"
)

// SetupResult summarises what Setup changed.
type SetupResult struct {
	Path          string
	Overwritten   bool
	LegacyRemoved bool
}

// Setup prompts for a username and password and writes them to the secure
// keyfile with owner-only permissions, then offers to remove any legacy
// keyfile. An existing keyfile is only replaced after confirmation.
func (s *Store) Setup(p Prompter) (SetupResult, error) {
	path, err := s.SecurePath()
	if err != nil {
		return SetupResult{}, err
	}

	result := SetupResult{Path: path}

	if s.fileExists(path) {
		ok, err := p.Confirm(fmt.Sprintf("Credentials already exist at %s. Overwrite?", path))
		if err != nil {
			return result, err
		}
		if !ok {
			return result, ErrSetupDeclined
		}
		result.Overwritten = true
	}

	username, err := p.Ask("Database username")
	if err != nil {
		return result, err
	}
	password, err := p.AskSecret("Database password")
	if err != nil {
		return result, err
	}

	creds := Credentials{Username: username, Password: password}
	if err := creds.Validate(); err != nil {
		return result, err
	}

	if err := writeKeyfile(path, creds); err != nil {
		return result, fmt.Errorf("failed to save credentials: %w", err)
	}

	s.logger.Info().
		Str("path", path).
		Bool("overwritten", result.Overwritten).
		Msg("database credentials saved")

	removed, err := s.OfferLegacyRemoval(p)
	if err != nil {
		return result, err
	}
	result.LegacyRemoved = removed

	return result, nil
}

// DetectLegacy reports the legacy keyfile path if one exists.
func (s *Store) DetectLegacy() (string, bool) {
	path, err := s.LegacyPath()
	if err != nil {
		return "", false
	}
	return path, s.fileExists(path)
}

// OfferLegacyRemoval asks whether to delete a detected legacy keyfile and
// deletes it on confirmation. It returns true only if a file was removed.
func (s *Store) OfferLegacyRemoval(p Prompter) (bool, error) {
	path, ok := s.DetectLegacy()
	if !ok {
		return false, nil
	}

	s.logger.Warn().Str("path", path).Msg("legacy db_keyfile found in working directory")

	remove, err := p.Confirm(fmt.Sprintf("Remove legacy keyfile %s?", path))
	if err != nil {
		return false, err
	}
	if !remove {
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("failed to remove legacy keyfile: %w", err)
	}

	s.logger.Info().Str("path", path).Msg("legacy keyfile removed")
	return true, nil
}
