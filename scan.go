package gbtool

import (
	"os"
	"path/filepath"

	"github.com/bodgit/gbtool/bootrom"
)

func supportedSize(size int64) bool {
	for _, n := range bootrom.Sizes {
		if int64(n) == size {
			return true
		}
	}
	return false
}

// Scan walks the directory tree rooted at path and identifies every file
// that is one of the supported boot ROM sizes. It returns the catalogue name
// of each file that matched, keyed by path.
func (g *GBTool) Scan(path string) (map[string]string, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	matches := make(map[string]string)
	err = filepath.Walk(dir, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
		if file != dir && info.Name()[0] == '.' {
			if info.Mode().IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Ignore anything that isn't a normal file
		if !info.Mode().IsRegular() {
			return nil
		}

		if !supportedSize(info.Size()) {
			return nil
		}

		name, err := g.Identify(file, bootrom.Sizes...)
		if err != nil {
			return err
		}
		if name != "" {
			matches[file] = name
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}
