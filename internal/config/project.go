package config

import (
	"os"
	"path/filepath"
)

// DirName is the per-project configuration directory.
const DirName = ".kabaddi"

// FindProjectRoot looks for the .kabaddi directory starting from the current
// working directory and moving up the directory tree
func FindProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findProjectRootFrom(currentDir), nil
}

func findProjectRootFrom(start string) string {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, DirName)); err == nil && info.IsDir() {
			return dir
		}
		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}
		dir = parentDir
	}
	// no .kabaddi directory anywhere above: use the start directory
	return start
}

// GetKabaddiDir returns the path to the .kabaddi directory under the project root
func GetKabaddiDir(projectRoot string) string {
	return filepath.Join(projectRoot, DirName)
}

// EnsureDirs creates the .kabaddi directory and its log directory
func EnsureDirs(kabaddiDir string) error {
	return os.MkdirAll(filepath.Join(kabaddiDir, "logs"), 0755)
}
