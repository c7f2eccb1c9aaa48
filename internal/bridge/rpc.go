// internal/bridge/rpc.go
package bridge

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxRPCBodyBytes = 1 << 20

// rpcRequest is the structured call envelope: {"method": ..., "params": {...}}.
type rpcRequest struct {
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

// handleRPC serves the tool surface. Success wraps the value in
// {"result": ...}; every failure becomes {"error": message} with a 400 for
// client faults and a 500/504 for upstream ones. The process keeps serving
// no matter how a request fails.
func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRPCBodyBytes))
	if err != nil {
		s.writeRPCError(w, MalformedRequest("request body unreadable"))
		return
	}

	if !json.Valid(body) {
		s.writeRPCError(w, MalformedRequest("Invalid JSON in request"))
		return
	}

	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil || req.Method == "" {
		s.writeRPCError(w, MalformedRequest("Invalid MCP request format"))
		return
	}
	if req.Params == nil {
		req.Params = map[string]any{}
	}

	result, err := s.reg.Call(r.Context(), req.Method, req.Params)
	if err != nil {
		var be *Error
		if errors.As(err, &be) {
			s.writeRPCError(w, be)
			return
		}
		s.log.Errorw("unclassified rpc error", "method", req.Method, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error: internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

func (s *Server) writeRPCError(w http.ResponseWriter, be *Error) {
	msg := be.Message
	status := be.HTTPStatus()
	if status >= http.StatusInternalServerError {
		msg = "Server error: " + msg
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
