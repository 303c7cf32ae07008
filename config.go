package skstr

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFilePath is where ParseFlags looks for a persisted Config
// when `-config` isn't given, mirroring the teacher's per-tool dotfile
// convention.
var DefaultConfigFilePath = filepath.Join(getUserHomeDir(), ".config/skstr/config.yaml")

// Config holds the sk-strings driver defaults a user can persist instead of
// repeating on every invocation. Each of the -H, -D, -t, -p, -m and -e
// flags has a corresponding field here; the output and logging flags do
// not. ParseFlags in internal/runner seeds its flag
// defaults from a loaded Config before applying command-line overrides.
type Config struct {
	Heuristic      string  `yaml:"heuristic"`
	Delimiter      string  `yaml:"delimiter"`
	TailSize       int     `yaml:"tail-size"`
	Agreepct       int     `yaml:"agreepct"`
	MinprobPercent float64 `yaml:"minprob"`
	MinEntropy     float64 `yaml:"min-entropy"`
}

// NewConfig reads a Config from a YAML file.
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err = yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GenerateSample writes a config file populated with the tool's stock
// defaults (DefaultOptions), for a user to customize.
func GenerateSample(filePath string) error {
	opts := DefaultOptions()
	cfg := Config{
		Heuristic:      opts.Heuristic,
		Delimiter:      opts.Delimiter,
		TailSize:       opts.TailSize,
		Agreepct:       opts.Agreepct,
		MinprobPercent: opts.MinprobPercent,
		MinEntropy:     0.5,
	}
	bin, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}

// ApplyTo applies cfg's values onto a base Options value, leaving any zero
// field in cfg (meaning "not set in this config file") at its existing
// value.
func (cfg *Config) ApplyTo(opts *Options) {
	if cfg.Heuristic != "" {
		opts.Heuristic = cfg.Heuristic
	}
	if cfg.Delimiter != "" {
		opts.Delimiter = cfg.Delimiter
	}
	if cfg.TailSize != 0 {
		opts.TailSize = cfg.TailSize
	}
	if cfg.Agreepct != 0 {
		opts.Agreepct = cfg.Agreepct
	}
	if cfg.MinprobPercent != 0 {
		opts.MinprobPercent = cfg.MinprobPercent
	}
	if cfg.MinEntropy != 0 {
		opts.MinEntropy = cfg.MinEntropy
	}
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}
