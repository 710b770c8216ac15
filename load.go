package followthemoney

import (
	"io/fs"
	"os"
	"path"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// LoadModel reads every YAML definition file under dir in the given
// filesystem and builds a model from the combined definitions. Files are
// parsed concurrently; each file may define any number of schemata. A schema
// name appearing in more than one file is a ModelError.
func LoadModel(fsys fs.FS, dir string) (*Model, error) {
	var files []string
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext := path.Ext(p); ext == ".yaml" || ext == ".yml" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		specs = make(map[string]*SchemaSpec)
	)
	var eg errgroup.Group
	for _, file := range files {
		file := file
		eg.Go(func() error {
			buf, err := fs.ReadFile(fsys, file)
			if err != nil {
				return err
			}
			parsed := make(map[string]*SchemaSpec)
			if err := yaml.Unmarshal(buf, &parsed); err != nil {
				return &ModelError{Message: "cannot parse " + file, Cause: err}
			}
			mu.Lock()
			defer mu.Unlock()
			for name, spec := range parsed {
				if _, ok := specs[name]; ok {
					return NewModelError(name, file, "duplicate schema definition")
				}
				specs[name] = spec
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return NewModel(specs)
}

// LoadModelPath builds a model from the YAML definition files in the given
// directory on the local filesystem.
func LoadModelPath(dir string) (*Model, error) {
	return LoadModel(os.DirFS(dir), ".")
}
