// internal/bridge/http.go
package bridge

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"storebridge/pkg/middleware"
	"storebridge/pkg/openapi"
)

// Server exposes the method registry over the two transports: the plain
// REST surface under /api and the structured tool surface under /mcp.
type Server struct {
	reg *Registry
	log *zap.SugaredLogger
}

func NewServer(reg *Registry, log *zap.SugaredLogger) *Server {
	return &Server{reg: reg, log: log}
}

// Routes mounts both surfaces plus the discovery endpoints.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/products", s.query("list_products", queryKey{"limit", "limit"}))
		ar.Get("/products/{id}", s.detail("get_product"))
		ar.Get("/customers", s.query("list_customers", queryKey{"limit", "limit"}))
		ar.Get("/customers/{id}", s.detail("get_customer"))
		ar.Get("/orders", s.query("list_orders", queryKey{"limit", "limit"}))
		ar.Get("/search", s.query("search_products", queryKey{"q", "query"}, queryKey{"limit", "limit"}))
		ar.Get("/store", s.query("get_store_info"))
		ar.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Endpoint not found"})
		})
	})

	r.Post("/mcp", s.handleRPC)
	r.Get("/mcp/tools", s.handleTools)
	r.Get("/.well-known/openapi.json", s.openAPIRegistry().ServeHandler("storebridge", "v1"))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	})
}

// queryKey maps an inbound query-string key to a schema parameter name
// (the search endpoint reads "q" into "query").
type queryKey struct {
	From string
	To   string
}

// query adapts a GET endpoint to a registry method. Values stay strings;
// the schema coerces them, so both transports share one validation path.
func (s *Server) query(method string, keys ...queryKey) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := map[string]any{}
		q := r.URL.Query()
		for _, k := range keys {
			if v := q.Get(k.From); v != "" {
				raw[k.To] = v
			}
		}
		result, err := s.reg.Call(r.Context(), method, raw)
		if err != nil {
			s.writeRESTError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// detail adapts a GET endpoint with an {id} path segment.
func (s *Server) detail(method string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := map[string]any{"id": chi.URLParam(r, "id")}
		result, err := s.reg.Call(r.Context(), method, raw)
		if err != nil {
			s.writeRESTError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// writeRESTError renders the taxonomy on the REST surface: a status code
// per kind plus {"error": message}. Unclassified errors become 500s.
func (s *Server) writeRESTError(w http.ResponseWriter, r *http.Request, err error) {
	var be *Error
	if errors.As(err, &be) {
		writeJSON(w, be.HTTPStatus(), map[string]string{"error": be.Message})
		return
	}
	s.log.Errorw("unclassified handler error", "req_id", middleware.RequestIDFrom(r.Context()), "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func (s *Server) openAPIRegistry() *openapi.Registry {
	limit := openapi.Param{Name: "limit", In: "query", Type: "integer", Default: 10}
	id := openapi.Param{Name: "id", In: "path", Type: "string", Required: true}
	doc := openapi.NewRegistry()
	doc.Register(openapi.Operation{Method: "GET", Path: "/api/products", Summary: "List products", Params: []openapi.Param{limit}})
	doc.Register(openapi.Operation{Method: "GET", Path: "/api/products/{id}", Summary: "Get one product", Params: []openapi.Param{id}})
	doc.Register(openapi.Operation{Method: "GET", Path: "/api/customers", Summary: "List customers", Params: []openapi.Param{limit}})
	doc.Register(openapi.Operation{Method: "GET", Path: "/api/customers/{id}", Summary: "Get one customer", Params: []openapi.Param{id}})
	doc.Register(openapi.Operation{Method: "GET", Path: "/api/orders", Summary: "List orders", Params: []openapi.Param{limit}})
	doc.Register(openapi.Operation{Method: "GET", Path: "/api/search", Summary: "Search products", Params: []openapi.Param{
		{Name: "q", In: "query", Type: "string", Required: true}, limit,
	}})
	doc.Register(openapi.Operation{Method: "GET", Path: "/api/store", Summary: "Store metadata"})
	doc.Register(openapi.Operation{Method: "GET", Path: "/health", Summary: "Liveness check"})
	return doc
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
