// Package query extracts values from completed responses: JSON body paths
// (gjson syntax), headers, status code and duration.
package query

import (
	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/fetchkit/packages/fetch"
)

// Source identifies where a value is extracted from.
type Source string

const (
	SourceBody     Source = "body"
	SourceHeader   Source = "header"
	SourceStatus   Source = "status"
	SourceDuration Source = "duration"
)

// Spec names one extraction: a source plus a path (gjson path for body,
// header name for header, ignored otherwise).
type Spec struct {
	Name   string
	Source Source
	Path   string
}

type Extractor struct {
	response *fetch.Response
	bodyJSON gjson.Result
}

func NewExtractor(resp *fetch.Response) *Extractor {
	e := &Extractor{
		response: resp,
	}
	if resp.IsJSON() {
		e.bodyJSON = gjson.Parse(resp.Text())
	}
	return e
}

func (e *Extractor) Extract(spec Spec) (any, bool) {
	switch spec.Source {
	case SourceBody:
		return e.extractFromBody(spec.Path)
	case SourceHeader:
		return e.extractFromHeader(spec.Path)
	case SourceStatus:
		return e.response.StatusCode, true
	case SourceDuration:
		return e.response.DurationMs(), true
	default:
		return nil, false
	}
}

func (e *Extractor) extractFromBody(path string) (any, bool) {
	if !e.bodyJSON.Exists() {
		if path == "" {
			return e.response.Text(), true
		}
		return nil, false
	}

	if path == "" {
		return e.bodyJSON.Value(), true
	}

	result := e.bodyJSON.Get(path)
	if !result.Exists() {
		return nil, false
	}
	return result.Value(), true
}

func (e *Extractor) extractFromHeader(name string) (any, bool) {
	value := e.response.Headers.Get(name)
	if value == "" {
		return nil, false
	}
	return value, true
}

// ExtractAll runs every spec against the response and returns the values
// that resolved, keyed by spec name.
func ExtractAll(resp *fetch.Response, specs []Spec) map[string]any {
	extractor := NewExtractor(resp)
	results := make(map[string]any)

	for _, s := range specs {
		if value, ok := extractor.Extract(s); ok {
			results[s.Name] = value
		}
	}

	return results
}
