package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mochamagic/internal/flagx"
	"github.com/dmitrijs2005/mochamagic/internal/storage"
	"github.com/dmitrijs2005/mochamagic/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "24h" and integer nanoseconds.
//
// This struct is an intermediate DTO (Data Transfer Object) used only for
// reading JSON configuration files. After unmarshalling, its non-empty fields
// are copied into the runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrGRPC      string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	Storage               storage.Config `json:"storage"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	LoginByName           *bool          `json:"login_by_name"`
	LogLevel              string         `json:"log_level"`
	LogFormat             string         `json:"log_format"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags. If neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
//
// Fields absent from the file keep the values from earlier sources.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = c.EndpointAddrGRPC
	}
	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	config.Storage.Merge(c.Storage)
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.LoginByName != nil {
		config.LoginByName = *c.LoginByName
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
}
