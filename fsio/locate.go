package fsio

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Locate returns the first of dir/name, in the order dirs are given, which
// exists.  With no dirs name is checked as is.
func Locate(name string, dirs ...string) (string, error) {
	if len(dirs) == 0 {
		dirs = []string{""}
	}
	for _, dir := range dirs {
		p := name
		if dir != "" && !filepath.IsAbs(name) {
			p = filepath.Join(dir, name)
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, fs.ErrNotExist)
}
