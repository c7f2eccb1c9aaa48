// internal/bridge/registry.go
package bridge

import (
	"context"
	"math"
	"net/url"
	"strconv"
)

type ParamType string

const (
	ParamInt    ParamType = "integer"
	ParamString ParamType = "string"
)

// Param declares one parameter of a registered method. Query-string values
// and structured JSON values resolve through the same schema so both
// transports behave identically.
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Default     any
	Description string
}

// HandlerFunc receives args already coerced to the schema's types:
// ParamInt values are int, ParamString values are string.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

type Method struct {
	Name    string
	Summary string
	Params  []Param
	Handler HandlerFunc
}

// Registry is the single static method table both transports dispatch
// through. Registration happens once at startup; lookups are read-only.
type Registry struct {
	methods map[string]Method
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{methods: map[string]Method{}}
}

func (r *Registry) Register(m Method) {
	if _, exists := r.methods[m.Name]; !exists {
		r.order = append(r.order, m.Name)
	}
	r.methods[m.Name] = m
}

func (r *Registry) Lookup(name string) (Method, bool) {
	m, ok := r.methods[name]
	return m, ok
}

// Methods returns all registered methods in registration order.
func (r *Registry) Methods() []Method {
	out := make([]Method, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.methods[name])
	}
	return out
}

// Call validates raw params against the method's schema and invokes the
// handler. raw values may be strings (query transport) or typed JSON
// values (structured transport).
func (r *Registry) Call(ctx context.Context, name string, raw map[string]any) (any, error) {
	m, ok := r.methods[name]
	if !ok {
		return nil, UnknownMethod(name)
	}
	args, err := resolveParams(m, raw)
	if err != nil {
		return nil, err
	}
	return m.Handler(ctx, args)
}

// CallQuery dispatches from URL query values, using the first value of
// each key. Coercion is identical to Call.
func (r *Registry) CallQuery(ctx context.Context, name string, q url.Values) (any, error) {
	raw := map[string]any{}
	for k, vs := range q {
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}
	return r.Call(ctx, name, raw)
}

func resolveParams(m Method, raw map[string]any) (map[string]any, error) {
	args := make(map[string]any, len(m.Params))
	for _, p := range m.Params {
		v, ok := raw[p.Name]
		if !ok || v == nil {
			if p.Required {
				return nil, InvalidParams(p.Name, "missing required parameter")
			}
			args[p.Name] = p.Default
			continue
		}
		coerced, err := coerce(p, v)
		if err != nil {
			return nil, err
		}
		args[p.Name] = coerced
	}
	return args, nil
}

func coerce(p Param, v any) (any, error) {
	switch p.Type {
	case ParamInt:
		switch t := v.(type) {
		case int:
			return t, nil
		case float64:
			// JSON numbers decode as float64; reject fractional values.
			if t != math.Trunc(t) {
				return nil, InvalidParams(p.Name, "must be an integer")
			}
			return int(t), nil
		case string:
			i, err := strconv.Atoi(t)
			if err != nil {
				return nil, InvalidParams(p.Name, "must be an integer")
			}
			return i, nil
		default:
			return nil, InvalidParams(p.Name, "must be an integer")
		}
	case ParamString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, InvalidParams(p.Name, "must be a string")
	default:
		return nil, InvalidParams(p.Name, "unsupported parameter type")
	}
}
