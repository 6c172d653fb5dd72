// Package project reads and writes the persisted project file: a JSON
// object {tables, relations, viewport}. Loading is tolerant of missing
// fields so files written by older or partial tools still open.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/schema"
)

// Extension is the conventional project file extension.
const Extension = ".json"

// Empty returns a project with no tables or relations and the default
// viewport.
func Empty() schema.Project {
	return schema.Project{
		Tables:    []schema.Table{},
		Relations: []schema.Relation{},
		Viewport:  schema.DefaultViewport,
	}
}

// file mirrors schema.Project with an optional viewport, so an absent
// viewport can be told apart from a zero one.
type file struct {
	Tables    []schema.Table    `json:"tables"`
	Relations []schema.Relation `json:"relations"`
	Viewport  *schema.Viewport  `json:"viewport"`
}

// Parse decodes a project. Missing arrays become empty, a missing viewport
// (or one with a non-positive scale) becomes the default, and columns and
// relations missing required fields get their defaults. Tables and
// relations are accepted in any order.
func Parse(data []byte) (schema.Project, error) {
	var f file
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &f); err != nil {
			return schema.Project{}, alerr.Wrap(alerr.ErrInvalidProject, err, "project file is not valid JSON")
		}
	}

	p := Empty()
	if f.Tables != nil {
		p.Tables = f.Tables
	}
	if f.Relations != nil {
		p.Relations = f.Relations
	}
	if f.Viewport != nil && f.Viewport.Scale > 0 {
		p.Viewport = *f.Viewport
	}
	normalize(&p)
	return p, nil
}

// normalize fills defaults the editor relies on.
func normalize(p *schema.Project) {
	for i := range p.Tables {
		t := &p.Tables[i]
		if t.Columns == nil {
			t.Columns = []schema.Column{}
		}
		for j := range t.Columns {
			c := &t.Columns[j]
			if c.Type == "" {
				c.Type = schema.TypeText
			}
			if c.IsPrimary {
				c.IsNullable = false
			}
			if !c.IsForeign {
				c.References = nil
			}
		}
	}
	for i := range p.Relations {
		r := &p.Relations[i]
		if r.Cardinality == "" {
			r.Cardinality = schema.OneToMany
		}
		if r.DeleteRule == "" {
			r.DeleteRule = schema.DeleteRestrict
		}
		if r.UpdateRule == "" {
			r.UpdateRule = schema.UpdateCascade
		}
	}
}

// Load reads a project from r.
func Load(r io.Reader) (schema.Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return schema.Project{}, alerr.Wrap(alerr.ErrIO, err, "failed to read project")
	}
	return Parse(data)
}

// LoadFile reads a project file.
func LoadFile(path string) (schema.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Project{}, alerr.Wrap(alerr.ErrIO, err, "failed to read project file").WithFile(path)
	}
	p, err := Parse(data)
	if err != nil {
		var e *alerr.Error
		if errors.As(err, &e) {
			e.WithFile(path)
		}
		return schema.Project{}, err
	}
	return p, nil
}

// Marshal encodes a project as indented JSON.
func Marshal(p schema.Project) ([]byte, error) {
	if p.Tables == nil {
		p.Tables = []schema.Table{}
	}
	if p.Relations == nil {
		p.Relations = []schema.Relation{}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, alerr.Wrap(alerr.EInternalError, err, "failed to encode project")
	}
	return append(data, '\n'), nil
}

// Save writes a project to w as indented JSON.
func Save(w io.Writer, p schema.Project) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return alerr.Wrap(alerr.ErrIO, err, "failed to write project")
	}
	return nil
}

// SaveFile writes a project file, replacing it atomically.
func SaveFile(path string, p schema.Project) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tabula-*")
	if err != nil {
		return alerr.Wrap(alerr.ErrIO, err, "failed to write project file").WithFile(path)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return alerr.Wrap(alerr.ErrIO, err, "failed to write project file").WithFile(path)
	}
	if err := tmp.Close(); err != nil {
		return alerr.Wrap(alerr.ErrIO, err, "failed to write project file").WithFile(path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return alerr.Wrap(alerr.ErrIO, err, "failed to write project file").WithFile(path)
	}
	return nil
}

// MarshalYAML encodes a project as YAML, for reading and diffing.
func MarshalYAML(p schema.Project) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, alerr.Wrap(alerr.EInternalError, err, "failed to encode project as YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, alerr.Wrap(alerr.EInternalError, err, "failed to encode project as YAML")
	}
	return buf.Bytes(), nil
}
