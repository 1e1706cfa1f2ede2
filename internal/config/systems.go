package config

import (
	"sort"
	"strings"
)

type SystemConfig struct {
	URL string
	// Restricted systems create drafts with restricted record and
	// files visibility.
	Restricted bool
	// VerifyTLS is off for the dev instance (self-signed certificate).
	VerifyTLS bool
}

// Systems maps the selectable target platforms to their base URLs.
var Systems = map[string]SystemConfig{
	"datasafe":  {URL: "https://datasafe.uni-muenster.de", Restricted: true, VerifyTLS: true},
	"datastore": {URL: "https://datastore.uni-muenster.de", VerifyTLS: true},
	"dev":       {URL: "https://127.0.0.1:5000", VerifyTLS: false},
}

// System looks a platform up by its case-insensitive name.
func System(name string) (SystemConfig, bool) {
	s, ok := Systems[strings.ToLower(name)]
	return s, ok
}

func SystemNames() []string {
	names := make([]string, 0, len(Systems))
	for name := range Systems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
