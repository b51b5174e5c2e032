package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/quizauth/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the current value untouched.
type JsonConfig struct {
	ServerURL *string `json:"server_url"`
	Transport *string `json:"transport"`
	StoreFile *string `json:"store_file"`
}

// parseJson overlays Config with values loaded from the file named by -c,
// -config or QUIZAUTH_CLI_CONFIG. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath("QUIZAUTH_CLI_CONFIG")
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.Transport != nil {
		cfg.Transport = *jc.Transport
	}
	if jc.StoreFile != nil {
		cfg.StoreFile = *jc.StoreFile
	}
}
