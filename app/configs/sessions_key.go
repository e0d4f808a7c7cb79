package configs

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
	CSRFKey []byte
}

var ErrMissingSessionKeys = errors.New("SESSION_AUTH_KEY and SESSION_ENC_KEY must be set")

// LoadSessionKeys decodes the base64 cookie keys. Outside production missing
// keys are replaced with random ones, which invalidates carts on restart.
func LoadSessionKeys(cfg *Config) (*SessionKeys, error) {
	if cfg.SessionAuthKey == "" || cfg.SessionEncKey == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingSessionKeys
		}
		keys := &SessionKeys{
			AuthKey: securecookie.GenerateRandomKey(64),
			EncKey:  securecookie.GenerateRandomKey(32),
		}
		if cfg.CSRFKey != "" {
			csrfKey, err := decodeKey("CSRF_KEY", cfg.CSRFKey)
			if err != nil {
				return nil, err
			}
			keys.CSRFKey = csrfKey
		}
		return keys, nil
	}

	authKey, err := decodeKey("SESSION_AUTH_KEY", cfg.SessionAuthKey)
	if err != nil {
		return nil, err
	}
	encKey, err := decodeKey("SESSION_ENC_KEY", cfg.SessionEncKey)
	if err != nil {
		return nil, err
	}
	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("SESSION_ENC_KEY has invalid length %d after decoding, must be 16, 24 or 32 bytes", len(encKey))
	}

	keys := &SessionKeys{AuthKey: authKey, EncKey: encKey}
	if cfg.CSRFKey != "" {
		csrfKey, err := decodeKey("CSRF_KEY", cfg.CSRFKey)
		if err != nil {
			return nil, err
		}
		if len(csrfKey) != 32 {
			return nil, fmt.Errorf("CSRF_KEY must decode to 32 bytes, got %d", len(csrfKey))
		}
		keys.CSRFKey = csrfKey
	}
	return keys, nil
}

func decodeKey(name, value string) ([]byte, error) {
	key, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s from base64: %w", name, err)
	}
	return key, nil
}

// GenerateSessionKeys writes a fresh set of keys in .env format to w and,
// when path is not empty, to that file as well.
func GenerateSessionKeys(w io.Writer, path string) error {
	authKey := securecookie.GenerateRandomKey(64)
	encKey := securecookie.GenerateRandomKey(32)
	csrfKey := securecookie.GenerateRandomKey(32)
	if authKey == nil || encKey == nil || csrfKey == nil {
		return errors.New("could not generate random keys")
	}

	lines := fmt.Sprintf("SESSION_AUTH_KEY=%s\nSESSION_ENC_KEY=%s\nCSRF_KEY=%s\n",
		base64.URLEncoding.EncodeToString(authKey),
		base64.URLEncoding.EncodeToString(encKey),
		base64.URLEncoding.EncodeToString(csrfKey))

	if _, err := io.WriteString(w, lines); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(lines), 0o600); err != nil {
		return fmt.Errorf("failed to write keys to %s: %w", path, err)
	}
	return nil
}
