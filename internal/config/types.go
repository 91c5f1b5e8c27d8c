// Package config loads csvprobe configuration from file, environment
// variables, and CLI flags. It is decoupled from command wiring so the
// MCP server and other tools can reuse it.
package config

// Config holds the resolved csvprobe configuration.
type Config struct {
	// DataRoot is the directory datasets are confined to. Relative values
	// are resolved against the current working directory at load time.
	DataRoot string `koanf:"data_root"`

	// Output selects CLI rendering: "table" or "json".
	Output string `koanf:"output"`

	// Verbose enables debug-level logging.
	Verbose bool `koanf:"verbose"`

	// Transport selects the server transport: "stdio" or "http".
	Transport string `koanf:"transport"`

	// HTTPAddr is the listen address for the HTTP transport.
	HTTPAddr string `koanf:"http_addr"`
}
