package categorize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadFile adds every profile in a YAML file to the registry. A profile with
// the name of a built-in one replaces it.
//
//	profiles:
//	  - name: showroom-2025
//	    default: Container
//	    rules:
//	      - label: Folding
//	        keywords: [fold, pliable]
//	    translations:
//	      fr: {Folding: Pliable, Container: Conteneur}
func (r *Registry) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles %s: %w", path, err)
	}
	var f profileFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("decode profiles %s: %w", path, err)
	}
	for _, p := range f.Profiles {
		if err := r.Add(p); err != nil {
			return fmt.Errorf("profiles %s: %w", path, err)
		}
	}
	return nil
}

// LoadRegistry returns the built-in profiles plus those in file, if set.
func LoadRegistry(file string) (*Registry, error) {
	r := NewRegistry()
	if file == "" {
		return r, nil
	}
	if err := r.LoadFile(file); err != nil {
		return nil, err
	}
	return r, nil
}

// Open resolves a profile by name and returns its Categorizer.
func Open(name, file string) (*Categorizer, error) {
	r, err := LoadRegistry(file)
	if err != nil {
		return nil, err
	}
	p, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return New(p)
}
