// Package vars provides reusable identifier resolvers for embedding the
// expression evaluator.
//
// A [Resolver] binds the top level of a YAML or JSON document to global
// identifiers and exposes them through [Resolver.Ref], the engine's
// resolution callback. Nested values are handed to the engine as raw JSON,
// so member and index access uses the engine's lazy JSON walking and costs
// only what the expression touches. Callable host functions register with
// [Resolver.Func].
package vars

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"

	"go.jacobcolvin.com/expreval"
)

var (
	// ErrInvalidDocument indicates the variable document could not be
	// parsed.
	ErrInvalidDocument = errors.New("invalid variable document")
	// ErrNotAnObject indicates the document's top level is not a mapping
	// of names to values.
	ErrNotAnObject = errors.New("top level is not an object")
)

// Resolver resolves global identifiers against a bound document and a
// registry of host functions.
//
// Create instances with [New], [FromJSON], or [FromYAML]. A Resolver is
// safe for concurrent readers once built.
type Resolver struct {
	funcs map[string]expreval.Func
	doc   []byte
}

// New returns an empty [Resolver] with no bound document. Use
// [Resolver.Func] to register functions.
func New() *Resolver {
	return &Resolver{}
}

// FromJSON creates a [Resolver] bound to a JSON document. The top level
// must be an object; its keys become global identifiers.
func FromJSON(data []byte) (*Resolver, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}

	if !gjson.ParseBytes(data).IsObject() {
		return nil, ErrNotAnObject
	}

	return &Resolver{doc: data}, nil
}

// FromYAML creates a [Resolver] bound to a YAML document by converting it
// to JSON first. The top level must be a mapping.
func FromYAML(data []byte) (*Resolver, error) {
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return FromJSON(j)
}

// FromFile creates a [Resolver] from file contents, choosing the parser by
// the file name extension: .json parses as JSON, everything else as YAML.
func FromFile(name string, data []byte) (*Resolver, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return FromJSON(data)
	}

	return FromYAML(data)
}

// Func registers a callable function under the given global name.
// Functions shadow document values of the same name.
func (r *Resolver) Func(name string, fn expreval.Func) *Resolver {
	if r.funcs == nil {
		r.funcs = make(map[string]expreval.Func)
	}

	r.funcs[name] = fn

	return r
}

// Ref resolves an identifier. It has the engine's resolution callback
// signature and handles only global lookups; chained access on document
// values is walked by the engine itself, and chained access on anything
// else yields undefined so the engine reports its own errors.
func (r *Resolver) Ref(this, ident expreval.Value) expreval.Value {
	if !this.IsGlobal() {
		return expreval.NewUndefined()
	}

	name := ident.String()

	if fn, ok := r.funcs[name]; ok {
		return expreval.NewFunction(fn)
	}

	if r.doc == nil {
		return expreval.NewUndefined()
	}

	var out expreval.Value

	found := false

	gjson.ParseBytes(r.doc).ForEach(func(k, v gjson.Result) bool {
		if k.Str != name {
			return true
		}

		found = true

		if v.Index > 0 && v.Index+len(v.Raw) <= len(r.doc) {
			out = expreval.NewJSONBytes(r.doc[v.Index : v.Index+len(v.Raw)])
		} else {
			out = expreval.NewJSON(v.Raw)
		}

		return false
	})

	if !found {
		return expreval.NewUndefined()
	}

	return out
}

// Env returns an [expreval.Env] using this resolver.
func (r *Resolver) Env() *expreval.Env {
	return &expreval.Env{Ref: r.Ref}
}
