package config

// Config is the top-level lpforge configuration, corresponding to
// .lpforge.yml.
type Config struct {
	// Port the editor backend listens on.
	Port int `yaml:"port" koanf:"port"`
	// AllowAllOrigins relaxes CORS for dev setups.
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	// Document is the default configuration document for new sessions
	// and reset. Empty means the bundled default.
	Document string `yaml:"document" koanf:"document"`
	// Template optionally points at a custom page template; empty means
	// the embedded one.
	Template string `yaml:"template" koanf:"template"`
	// OutputDir receives exported archives.
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
	// Documents are the include globs for batch export.
	Documents []string `yaml:"documents" koanf:"documents"`
	// Exclude are glob patterns skipped during batch export.
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}
