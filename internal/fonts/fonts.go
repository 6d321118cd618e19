package fonts

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the font file extensions raylib can load.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate base directories for fonts (relative to process cwd), so the HUD
// font is found whether run from the repo root or cmd/slingshot.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf"),
// sorted, with forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Find returns the full path of the HUD font: the first file under dirs whose name contains
// "regular", else the first font found. ok is false when no dir holds a font.
func Find(dirs ...string) (path string, ok bool) {
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil || len(list) == 0 {
			continue
		}
		for _, rel := range list {
			if strings.Contains(strings.ToLower(rel), "regular") {
				return filepath.Join(base, rel), true
			}
		}
		return filepath.Join(base, list[0]), true
	}
	return "", false
}
