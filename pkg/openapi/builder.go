// pkg/openapi/builder.go
package openapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Param describes a query or path parameter of an operation.
type Param struct {
	Name     string `json:"name"`
	In       string `json:"in"` // query | path
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
}

// Operation represents a single HTTP operation to surface in OpenAPI.
type Operation struct {
	Method      string
	Path        string
	Summary     string
	Description string
	Params      []Param
	Responses   map[string]any
}

// Registry holds the operations the service exposes.
type Registry struct {
	Ops []Operation
}

func NewRegistry() *Registry { return &Registry{Ops: []Operation{}} }

func (r *Registry) Register(op Operation) {
	if op.Method != "" {
		op.Method = strings.ToLower(op.Method)
	}
	if op.Responses == nil {
		op.Responses = map[string]any{"200": map[string]any{"description": "OK"}}
	}
	r.Ops = append(r.Ops, op)
}

// Build produces a minimal OpenAPI 3.1 document for the registered
// operations. Schemas are kept inline; the surface is read-only and
// unauthenticated so no security schemes are declared.
func (r *Registry) Build(serviceName, version string) map[string]any {
	paths := map[string]any{}
	for _, op := range r.Ops {
		if _, ok := paths[op.Path]; !ok {
			paths[op.Path] = map[string]any{}
		}
		m := map[string]any{
			"summary":   op.Summary,
			"responses": op.Responses,
		}
		if op.Description != "" {
			m["description"] = op.Description
		}
		if len(op.Params) > 0 {
			var params []map[string]any
			for _, p := range op.Params {
				entry := map[string]any{
					"name":     p.Name,
					"in":       p.In,
					"required": p.Required,
					"schema":   map[string]any{"type": p.Type},
				}
				if p.Default != nil {
					entry["schema"].(map[string]any)["default"] = p.Default
				}
				params = append(params, entry)
			}
			m["parameters"] = params
		}
		paths[op.Path].(map[string]any)[op.Method] = m
	}
	return map[string]any{
		"openapi": "3.1.0",
		"info":    map[string]any{"title": serviceName, "version": version},
		"paths":   paths,
	}
}

// ServeHandler returns an HTTP handler that serves the built OpenAPI JSON.
func (r *Registry) ServeHandler(serviceName, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(r.Build(serviceName, version))
	}
}
