package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Credentials is the client identifier/secret pair for the catalog's client-credentials grant.
type Credentials struct {
	ClientID     string `envconfig:"CLIENT_ID"`
	ClientSecret string `envconfig:"CLIENT_SECRET"`
}

// LoadCredentials reads CLIENT_ID and CLIENT_SECRET from the environment.
//
// The given dotenv files (default ".env") are loaded first when present; they never override variables already set in the process environment.
func LoadCredentials(envFiles ...string) (*Credentials, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: failed to load %s: %v", ErrConfiguration, f, err)
		}
	}

	var creds Credentials
	if err := envconfig.Process("", &creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	creds.ClientID = strings.TrimSpace(creds.ClientID)
	creds.ClientSecret = strings.TrimSpace(creds.ClientSecret)

	if creds.ClientID == "" {
		return nil, fmt.Errorf("%w: CLIENT_ID is not set", ErrConfiguration)
	}
	if creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: CLIENT_SECRET is not set", ErrConfiguration)
	}

	return &creds, nil
}
