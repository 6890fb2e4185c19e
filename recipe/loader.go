package recipe

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/sporeplan/errors"
)

// Loader loads recipe definitions by name.
type Loader interface {
	Load(name string) (*Recipe, error)
	List() ([]string, error)
}

var extensions = []string{".yaml", ".yml", ".json"}

// FSLoader loads recipes from YAML or JSON files in one or more file systems.
// Earlier sources shadow later ones.
type FSLoader struct {
	sources []fs.FS
}

// NewLoader creates a loader over the given file systems.
func NewLoader(sources ...fs.FS) *FSLoader {
	return &FSLoader{sources: sources}
}

// NewFileLoader creates a loader that searches the given directories.
func NewFileLoader(dirs ...string) *FSLoader {
	sources := make([]fs.FS, 0, len(dirs))
	for _, dir := range dirs {
		sources = append(sources, os.DirFS(dir))
	}
	return NewLoader(sources...)
}

// Load finds {name}.yaml, {name}.yml or {name}.json at the top of each source
// or one directory below it. A file that exists but cannot be decoded is an
// error; no match at all is NOT_FOUND.
func (l *FSLoader) Load(name string) (*Recipe, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, errors.InvalidInput("recipe", "recipe names must be non-empty and contain no path separators")
	}

	for _, src := range l.sources {
		for _, ext := range extensions {
			file := name + ext
			if r, err := loadFile(src, file); !isNotExist(err) {
				return r, err
			}

			matches, _ := fs.Glob(src, path.Join("*", file))
			sort.Strings(matches)
			for _, match := range matches {
				if r, err := loadFile(src, match); !isNotExist(err) {
					return r, err
				}
			}
		}
	}
	return nil, errors.NotFound("recipe", name)
}

// List returns the names of every recipe file visible to the loader, sorted.
func (l *FSLoader) List() ([]string, error) {
	seen := make(map[string]bool)
	for _, src := range l.sources {
		for _, ext := range extensions {
			for _, pattern := range []string{"*" + ext, path.Join("*", "*"+ext)} {
				matches, err := fs.Glob(src, pattern)
				if err != nil {
					return nil, errors.Internal(err)
				}
				for _, m := range matches {
					seen[strings.TrimSuffix(path.Base(m), ext)] = true
				}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func loadFile(src fs.FS, file string) (*Recipe, error) {
	data, err := fs.ReadFile(src, file)
	if err != nil {
		return nil, err
	}
	r, err := Decode(data, path.Ext(file))
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return nil, appErr.WithDetail("file", file)
		}
		return nil, err
	}
	if r.Name == "" {
		r.Name = strings.TrimSuffix(path.Base(file), path.Ext(file))
	}
	return r, nil
}

// Decode parses a recipe document. ext selects the format: ".json" for JSON,
// anything else is YAML.
func Decode(data []byte, ext string) (*Recipe, error) {
	var r Recipe
	var err error
	if strings.EqualFold(ext, ".json") {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, errors.InvalidFormat("recipe", "YAML or JSON recipe document").WithCause(err)
	}
	return &r, nil
}

// LoadFile reads a single recipe file from disk.
func LoadFile(file string) (*Recipe, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if isNotExist(err) {
			return nil, errors.NotFound("recipe file", file)
		}
		return nil, errors.Internal(err)
	}
	r, err := Decode(data, filepath.Ext(file))
	if err != nil {
		return nil, err
	}
	if r.Name == "" {
		r.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	return r, nil
}

func isNotExist(err error) bool {
	return err != nil && stderrors.Is(err, fs.ErrNotExist)
}
