// Package config loads checkoff's startup configuration.
//
// # Resolution order
//
//  1. ~/.config/checkoff/config.toml, or the path given with --config
//  2. CHECKOFF_API_BASE_URL from the environment
//  3. --base-url on the command line (OverrideBaseURL)
//
// A missing file is not an error. A missing base URL is: Validate returns
// ErrMissingBaseURL, and the app package turns it into a startup failure
// before anything touches the network.
//
// # File format
//
//	api_base_url    = "http://localhost:5000/api/todos"
//	request_timeout = "10s"   # optional, default none
//	log_file        = "~/.local/state/checkoff/checkoff.log"
//
// Paths starting with ~ are expanded with go-homedir.
package config
