package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/jangler/equave/collection"
	"github.com/jangler/equave/interval"
)

var errUnknownScale = errors.New("unknown scale")

// named scale as stored in the library file
type scaleDef struct {
	Description string   `yaml:"description,omitempty"`
	Degrees     []string `yaml:"degrees"`
	Equave      string   `yaml:"equave,omitempty"`
}

type library struct {
	Scales map[string]scaleDef `yaml:"scales"`
}

// read a scale library. a missing file gives an empty library.
func loadLibrary(path string) (*library, error) {
	lib := &library{Scales: map[string]scaleDef{}}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return lib, nil
	} else if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, lib); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if lib.Scales == nil {
		lib.Scales = map[string]scaleDef{}
	}
	return lib, nil
}

// write the library back to path
func (l *library) write(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// return scale names in order
func (l *library) names() []string {
	names := make([]string, 0, len(l.Scales))
	for name := range l.Scales {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// build the named scale
func (l *library) scale(name string) (*collection.Scale, error) {
	def, ok := l.Scales[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, errUnknownScale)
	}
	return def.build()
}

// store s under name, replacing any scale of that name
func (l *library) add(name, description string, s *collection.Scale) {
	def := scaleDef{Description: description, Equave: s.Equave().String()}
	for _, d := range s.Degrees() {
		def.Degrees = append(def.Degrees, d.String())
	}
	l.Scales[name] = def
}

func (d scaleDef) build() (*collection.Scale, error) {
	degrees, err := interval.ParseAll(d.Degrees...)
	if err != nil {
		return nil, err
	}
	var opts []collection.Option
	if d.Equave != "" {
		equave, err := interval.Parse(d.Equave)
		if err != nil {
			return nil, err
		}
		opts = append(opts, collection.WithEquave(equave))
	}
	return collection.NewScale(degrees, opts...)
}
