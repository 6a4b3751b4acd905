package config

// DefaultExcludes are glob patterns skipped by batch export by default.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	"dist/**",
	"package.json",
	"package-lock.json",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:      8710,
		OutputDir: "export",
		Documents: []string{"**/*.json"},
		Exclude:   DefaultExcludes,
	}
}
