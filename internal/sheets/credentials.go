package sheets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ServiceAccount is the structured secret bundle of a Google service account.
// It is supplied by the environment and treated as opaque configuration.
type ServiceAccount struct {
	Type                    string `json:"type" mapstructure:"type"`
	ProjectID               string `json:"project_id" mapstructure:"project_id"`
	PrivateKeyID            string `json:"private_key_id" mapstructure:"private_key_id"`
	PrivateKey              string `json:"private_key" mapstructure:"private_key"`
	ClientEmail             string `json:"client_email" mapstructure:"client_email"`
	ClientID                string `json:"client_id" mapstructure:"client_id"`
	AuthURI                 string `json:"auth_uri" mapstructure:"auth_uri"`
	TokenURI                string `json:"token_uri" mapstructure:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url" mapstructure:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url" mapstructure:"client_x509_cert_url"`
	UniverseDomain          string `json:"universe_domain,omitempty" mapstructure:"universe_domain"`
}

// Present reports whether enough of the bundle exists to attempt authentication.
func (sa *ServiceAccount) Present() bool {
	return sa != nil && sa.ClientEmail != "" && sa.PrivateKey != ""
}

// JSON renders the bundle in the key-file layout the Google client expects.
func (sa *ServiceAccount) JSON() ([]byte, error) {
	if !sa.Present() {
		return nil, errors.New("service account: client_email and private_key are required")
	}
	out := *sa
	if out.Type == "" {
		out.Type = "service_account"
	}
	// TOML/.env sources often carry the key with literal "\n" sequences
	out.PrivateKey = strings.ReplaceAll(out.PrivateKey, `\n`, "\n")
	return json.Marshal(out)
}

// LoadServiceAccountFile reads a downloaded JSON key file.
func LoadServiceAccountFile(path string) (*ServiceAccount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadServiceAccountFile(): %w", err)
	}
	var sa ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("LoadServiceAccountFile(): invalid key file %s: %w", path, err)
	}
	return &sa, nil
}

// ExtractSheetID accepts a spreadsheet URL (.../spreadsheets/d/<id>/edit) or
// a bare spreadsheet id. It returns "" when neither form is recognised.
func ExtractSheetID(sheetURL string) string {
	s := strings.TrimSpace(sheetURL)
	if s == "" {
		return ""
	}
	if _, rest, ok := strings.Cut(s, "/d/"); ok {
		id, _, _ := strings.Cut(rest, "/")
		id, _, _ = strings.Cut(id, "?")
		id, _, _ = strings.Cut(id, "#")
		return id
	}
	if strings.ContainsAny(s, "/?#: ") {
		return ""
	}
	return s
}
