package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir walks the data directory and discovers every series file with a
// supported extension. Hidden files and directories are skipped.
// A missing directory is not an error; it yields no files.
func ScanDir(dataDir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dataDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != dataDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		format, ok := FormatForExt(filepath.Ext(name))
		if !ok {
			return nil
		}

		files = append(files, DiscoveredFile{
			Path:   path,
			Name:   strings.TrimSuffix(name, filepath.Ext(name)),
			Format: format,
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, err
}

// SeriesNames returns the distinct file stems of a set of discovered files.
func SeriesNames(files []DiscoveredFile) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, f := range files {
		if _, ok := seen[f.Name]; ok {
			continue
		}
		seen[f.Name] = struct{}{}
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}
