package fontmetrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// FallbackFamily is used whenever a requested family cannot be located.
const FallbackFamily = "Go"

var errFontNotFound = errors.New("font not found")

// Locator resolves a font family name to the raw bytes of a TrueType or
// OpenType file.
type Locator func(family string) ([]byte, error)

type packagedFace struct {
	family string
	data   []byte
}

// packagedFaces ships with the binary. The first entry is the fallback.
var packagedFaces = []packagedFace{
	{family: FallbackFamily, data: goregular.TTF},
	{family: "Go Mono", data: gomono.TTF},
	{family: "Go Bold", data: gobold.TTF},
}

// NormalizeFamily folds a family name into the key used by locators and the
// face cache: trimmed, lower case, runs of spaces, hyphens and underscores
// collapsed to a single hyphen.
func NormalizeFamily(family string) string {
	family = strings.ToLower(strings.TrimSpace(family))
	fields := strings.FieldsFunc(family, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	})
	return strings.Join(fields, "-")
}

// PackagedLocator resolves the faces embedded in the binary.
func PackagedLocator() Locator {
	byName := make(map[string][]byte, len(packagedFaces))
	for _, f := range packagedFaces {
		byName[NormalizeFamily(f.family)] = f.data
	}
	return func(family string) ([]byte, error) {
		if data, ok := byName[NormalizeFamily(family)]; ok {
			return data, nil
		}
		return nil, errFontNotFound
	}
}

// DirLocator scans the given directories for a font file whose base name
// starts with the family name, e.g. "Montserrat" matches
// "Montserrat-Regular.ttf". Regular variants win over other styles.
func DirLocator(dirs []string) Locator {
	return func(family string) ([]byte, error) {
		key := NormalizeFamily(family)
		if key == "" {
			return nil, errFontNotFound
		}
		var candidate string
		for _, dir := range dirs {
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() || !isFontFile(entry.Name()) {
					continue
				}
				base := NormalizeFamily(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
				if base == key || base == key+"-regular" {
					return readFontFile(filepath.Join(dir, entry.Name()))
				}
				if candidate == "" && strings.HasPrefix(base, key+"-") {
					candidate = filepath.Join(dir, entry.Name())
				}
			}
		}
		if candidate != "" {
			return readFontFile(candidate)
		}
		return nil, errFontNotFound
	}
}

// SystemLocator searches the platform font folders using go-findfont.
func SystemLocator() Locator {
	return func(family string) ([]byte, error) {
		name := strings.TrimSpace(family)
		if name == "" {
			return nil, errFontNotFound
		}
		for _, candidate := range []string{name + "-Regular.ttf", name + ".ttf", name + "-Regular.otf", name + ".otf"} {
			if path, err := findfont.Find(candidate); err == nil && path != "" {
				return readFontFile(path)
			}
		}
		return nil, errFontNotFound
	}
}

func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}

func readFontFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return data, nil
}
