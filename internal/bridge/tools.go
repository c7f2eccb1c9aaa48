// internal/bridge/tools.go
package bridge

import "net/http"

// Tool is the discovery shape for one invocable method, mirroring the
// registry's schema so assistant clients can build calls without prior
// knowledge of the surface.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []ToolParam `json:"params"`
}

type ToolParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// Tools lists every registered method in registration order.
func Tools(reg *Registry) []Tool {
	methods := reg.Methods()
	tools := make([]Tool, 0, len(methods))
	for _, m := range methods {
		params := make([]ToolParam, 0, len(m.Params))
		for _, p := range m.Params {
			params = append(params, ToolParam{
				Name:        p.Name,
				Type:        string(p.Type),
				Required:    p.Required,
				Default:     p.Default,
				Description: p.Description,
			})
		}
		tools = append(tools, Tool{Name: m.Name, Description: m.Summary, Params: params})
	}
	return tools
}

func (s *Server) handleTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": Tools(s.reg)})
}
