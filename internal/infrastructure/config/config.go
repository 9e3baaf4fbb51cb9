package config

import "github.com/kelseyhightower/envconfig"

// Client holds configuration for the OptiCode CLI client.
type Client struct {
	APIURL  string `envconfig:"OPTICODE_API_URL" default:"http://localhost:5000"`
	Timeout int    `envconfig:"OPTICODE_TIMEOUT_SECONDS" default:"10"`
}

// Server holds configuration for the local development server.
type Server struct {
	Addr   string `envconfig:"OPTICODE_SERVE_ADDR" default:":5000"`
	DBPath string `envconfig:"OPTICODE_DB_PATH" default:""`
}

// LoadClient loads client configuration from environment variables.
func LoadClient() (*Client, error) {
	var cfg Client
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadServer loads server configuration from environment variables.
func LoadServer() (*Server, error) {
	var cfg Server
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
