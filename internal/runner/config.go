package runner

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	skstr "github.com/pfsalab/skstr"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"
)

// DefaultConfig is loaded once at process start from skstr.DefaultConfigFilePath
// if present. ParseFlags uses its non-zero fields as flag defaults, which an
// explicit "-config" file or command-line flag then overrides.
var DefaultConfig *skstr.Config

// init loads DefaultConfig directly with goccy/go-yaml rather than
// skstr.NewConfig's plain yaml.v3 unmarshal, so a malformed persisted
// config.yaml gets FormatError's line/column-annotated message instead of a
// bare decode error.
func init() {
	path := skstr.DefaultConfigFilePath
	if fileutil.FileExists(path) {
		bin, err := os.ReadFile(path)
		if err != nil {
			gologger.Error().Msgf("skstr configuration read error: %v", err)
			return
		}
		var cfg skstr.Config
		if errx := yaml.Unmarshal(bin, &cfg); errx != nil {
			gologger.Error().Msgf("skstr configuration syntax error.\n %v\n", yaml.FormatError(errx, true, true))
			return
		}
		DefaultConfig = &cfg
		return
	}
	if err := validateDir(filepath.Dir(path)); err != nil {
		gologger.Error().Msgf("skstr config dir not found and failed to create got: %v", err)
		return
	}
	if err := skstr.GenerateSample(path); err != nil {
		gologger.Error().Msgf("failed to save default config to %v got: %v", path, err)
	}
}

// validateDir checks if dir exists, creating it if not.
func validateDir(dirPath string) error {
	if fileutil.FolderExists(dirPath) {
		return nil
	}
	return fileutil.CreateFolder(dirPath)
}
