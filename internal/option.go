package internal

import (
	"io"
	"net/http"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	root       string
	sourceURL  string
	targetPath string
	client     *http.Client
	stdout     io.Writer
	stderr     io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithRoot sets the directory the target file is resolved against.
func WithRoot(dir string) Option {
	return func(a *application) {
		a.root = dir
	}
}

// WithHTTPClient replaces the client built from HTTPConfig.
func WithHTTPClient(c *http.Client) Option {
	return func(a *application) {
		a.client = c
	}
}

// WithSourceURL points the registry request somewhere else. Used by tests.
func WithSourceURL(url string) Option {
	return func(a *application) {
		a.sourceURL = url
	}
}

// WithOutput redirects operator output and logs.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *application) {
		a.stdout = stdout
		a.stderr = stderr
	}
}
