package config

// Default configuration values.
const (
	DefaultDataRoot  = "./data"
	DefaultOutput    = "table"
	DefaultTransport = "stdio"
	DefaultHTTPAddr  = ":8080"
)

// ApplyDefaults fills zero-valued fields with defaults.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.DataRoot == "" {
		c.DataRoot = DefaultDataRoot
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Transport == "" {
		c.Transport = DefaultTransport
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = DefaultHTTPAddr
	}
}
