package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/ecnf/pkg"
)

const (
	// baseConfig is the base name of the configuration file.
	baseConfig = "config"
	// configExt is the extension of ECNF documents.
	configExt = ".ecnf"
	// jsonExt is the extension of the JSON configuration file, read when
	// present before the ECNF one.
	jsonExt = ".json"
)

var defaultDirMode os.FileMode = 0o700

// configPath returns the path of the configuration file with extension ext.
func configPath(ext string) string {
	return filepath.Join(pkg.ConfigDir(), baseConfig+ext)
}
