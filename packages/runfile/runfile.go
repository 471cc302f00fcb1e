// Package runfile loads YAML files describing a sequence of requests for the
// CLI to execute.
package runfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/fetchkit/packages/fetch"
)

// Header is one header line. Lines are applied in file order and duplicate
// names are allowed.
type Header struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Request is one request definition.
type Request struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Method   string   `yaml:"method"`
	Headers  []Header `yaml:"headers"`
	Body     string   `yaml:"body"`
	BodyFile string   `yaml:"bodyFile"`
}

// File is a parsed run file.
type File struct {
	Requests []Request `yaml:"requests"`

	// baseDir resolves relative bodyFile paths.
	baseDir string
}

// Load parses a run file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse run file %s: %w", path, err)
	}

	for i, r := range f.Requests {
		if r.URL == "" {
			return nil, fmt.Errorf("request %d in %s has no url", i+1, path)
		}
	}

	f.baseDir = filepath.Dir(path)
	return &f, nil
}

// Options builds the fetch options for one request definition, reading the
// body from disk when bodyFile is set.
func (f *File) Options(r *Request) (*fetch.RequestOptions, error) {
	opts := &fetch.RequestOptions{Method: r.Method}

	if len(r.Headers) > 0 {
		headers := fetch.NewHeaders()
		for _, h := range r.Headers {
			headers.Append(h.Name, h.Value)
		}
		opts.Headers = headers
	}

	switch {
	case r.Body != "":
		opts.Body = r.Body
	case r.BodyFile != "":
		path := r.BodyFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(f.baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read body file %s: %w", r.BodyFile, err)
		}
		opts.Body = data
	}

	return opts, nil
}
