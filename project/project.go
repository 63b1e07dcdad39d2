// Package project finds the Java and XML sources of a working tree and
// parses them into pipeline units.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/java/parser"
	"github.com/dhamidi/recast/rewrite"
	"github.com/dhamidi/recast/xml"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindJava
	KindXML
)

// KindOf classifies path by its extension.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".java":
		return KindJava
	case ".xml", ".pom":
		return KindXML
	}
	return KindUnknown
}

// skipDirs are build output and tool directories never descended into.
var skipDirs = []string{"target", "build", "out", "node_modules"}

// Project is the set of source files below a root directory.
type Project struct {
	RootDir string
	Files   []string
	// Classes resolves library types while Java files are attributed.
	Classes java.ClassSource
}

// Load scans the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom collects the Java and XML files below rootDir, skipping hidden
// and build output directories. A rootDir naming a file yields that file.
func LoadFrom(rootDir string) (*Project, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", rootDir, err)
	}
	p := &Project{RootDir: rootDir}
	if !info.IsDir() {
		if KindOf(rootDir) != KindUnknown {
			p.Files = []string{rootDir}
		}
		return p, nil
	}

	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != rootDir && (strings.HasPrefix(name, ".") || slices.Contains(skipDirs, name)) {
				return filepath.SkipDir
			}
			return nil
		}
		if KindOf(path) != KindUnknown {
			p.Files = append(p.Files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", rootDir, err)
	}
	slices.Sort(p.Files)
	log.Debugf("found %d source files in %s", len(p.Files), rootDir)
	return p, nil
}

// Merge combines the files of several projects, dropping duplicates.
func Merge(projects ...*Project) *Project {
	out := &Project{}
	for _, p := range projects {
		if out.RootDir == "" {
			out.RootDir = p.RootDir
		}
		if out.Classes == nil {
			out.Classes = p.Classes
		}
		for _, f := range p.Files {
			if !slices.Contains(out.Files, f) {
				out.Files = append(out.Files, f)
			}
		}
	}
	return out
}

// Units reads and parses every file of p.
func (p *Project) Units() ([]rewrite.Unit, error) {
	sources, err := ReadSources(p.Files)
	if err != nil {
		return nil, err
	}
	return ParseWith(p.Classes, sources), nil
}

func ReadSources(paths []string) ([]parser.Source, error) {
	sources := make([]parser.Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		sources = append(sources, parser.Source{Path: path, Text: string(data)})
	}
	return sources, nil
}

// Parse parses sources into units in the same order. Java sources are
// attributed together so they can resolve each other's types.
func Parse(sources []parser.Source) []rewrite.Unit {
	return ParseWith(nil, sources)
}

// ParseWith is Parse with library types loaded from classes.
func ParseWith(classes java.ClassSource, sources []parser.Source) []rewrite.Unit {
	units := make([]rewrite.Unit, len(sources))
	var javaSources []parser.Source
	var javaAt []int
	for i, src := range sources {
		switch KindOf(src.Path) {
		case KindJava:
			javaSources = append(javaSources, src)
			javaAt = append(javaAt, i)
		case KindXML:
			units[i] = rewrite.Unit{Path: src.Path}
			doc, err := xml.Parse(src.Path, src.Text)
			if err != nil {
				log.Warning("parse failed", "path", src.Path, "error", err.Error())
				units[i].Err = err
				continue
			}
			units[i].Source = doc
		default:
			units[i] = rewrite.Unit{Path: src.Path, Err: fmt.Errorf("%s: unsupported file type", src.Path)}
		}
	}
	for j, u := range parser.ParseWith(classes, javaSources...) {
		units[javaAt[j]] = u.Rewrite()
	}
	return units
}
