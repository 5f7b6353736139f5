// Package rpc exposes the marketplace over HTTP JSON-RPC and WebSocket.
// Requests use the form {"method": "name", "params": [{...}]}; responses
// carry a result object with a status field.
package rpc

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Server handles HTTP JSON-RPC requests.
type Server struct {
	registry *MethodRegistry
	services *Services
	timeout  time.Duration
}

// NewServer creates an RPC server bound to the given services.
func NewServer(services *Services, timeout time.Duration) *Server {
	server := &Server{
		registry: NewMethodRegistry(),
		services: services,
		timeout:  timeout,
	}
	server.registerAllMethods()
	return server
}

// Methods returns the registered method names.
func (s *Server) Methods() []string {
	return s.registry.List()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		s.handleGetRequest(w, r)
	case http.MethodPost:
		s.handlePostRequest(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGetRequest serves simple queries like /?command=server_info.
func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("command")
	if method == "" {
		method = "server_info"
	}

	ctx := &RpcContext{
		Context:  r.Context(),
		ClientIP: getClientIP(r),
	}

	result, rpcErr := s.executeMethod(method, nil, ctx)
	s.writeResponse(w, nil, result, rpcErr)
}

func (s *Server) handlePostRequest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, nil, "internal", "Failed to read request body")
		return
	}
	defer r.Body.Close()

	var request Request
	if err := json.Unmarshal(body, &request); err != nil {
		s.writeError(w, nil, "jsonInvalid", "Invalid JSON: "+err.Error())
		return
	}
	if request.Method == "" {
		s.writeError(w, nil, "missingCommand", "Missing method field")
		return
	}

	// Params come as an array holding at most one object.
	var params json.RawMessage
	if len(request.Params) > 0 {
		params = request.Params[0]
	}

	ctx := &RpcContext{
		Context:  r.Context(),
		ClientIP: getClientIP(r),
	}

	result, rpcErr := s.executeMethod(request.Method, params, ctx)

	// On error the failing request is echoed back.
	var requestObj interface{}
	if rpcErr != nil {
		reqMap := map[string]interface{}{"command": request.Method}
		if params != nil {
			var paramsMap map[string]interface{}
			if err := json.Unmarshal(params, &paramsMap); err == nil {
				for k, v := range paramsMap {
					reqMap[k] = v
				}
			}
		}
		requestObj = reqMap
	}

	s.writeResponse(w, requestObj, result, rpcErr)
}

func (s *Server) executeMethod(method string, params json.RawMessage, ctx *RpcContext) (interface{}, *RpcError) {
	handler, exists := s.registry.Get(method)
	if !exists {
		return nil, RpcErrorMethodNotFound(method)
	}
	return handler.Handle(ctx, params)
}

// writeResponse writes the result object. Success responses carry
// result.status = "success"; errors carry status, error, error_code and
// error_message inside result.
func (s *Server) writeResponse(w http.ResponseWriter, request interface{}, result interface{}, rpcErr *RpcError) {
	response := make(map[string]interface{})

	if rpcErr != nil {
		resultObj := map[string]interface{}{
			"status":        "error",
			"error":         rpcErr.ErrorString,
			"error_code":    rpcErr.Code,
			"error_message": rpcErr.Message,
		}
		if request != nil {
			resultObj["request"] = request
		}
		response["result"] = resultObj
	} else {
		if resultMap, ok := result.(map[string]interface{}); ok {
			resultMap["status"] = "success"
			response["result"] = resultMap
		} else {
			response["result"] = map[string]interface{}{
				"status": "success",
				"data":   result,
			}
		}
	}

	responseData, err := json.Marshal(response)
	if err != nil {
		log.Printf("rpc: failed to marshal response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(responseData)
}

func (s *Server) writeError(w http.ResponseWriter, request interface{}, errorCode, message string) {
	s.writeResponse(w, request, nil, &RpcError{ErrorString: errorCode, Message: message})
}

// getClientIP extracts the client IP, honoring proxy headers.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
