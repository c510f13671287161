package server

import (
	"encoding/json"
	"net/http"
	"time"

	"chatrelay/pkg/gateway"
)

const serviceName = "chatrelay"

// handleHealth reports process liveness. It never touches providers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   serviceName,
	})
}

// handleProviders lists every registered provider with its health entry,
// refreshing stale entries via probes.
func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	providers := s.gateway.ListProviders(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"providers": providers,
		"count":     len(providers),
	})
}

// handleTestProvider probes a single provider, bypassing the cache TTL.
// An unknown provider id still yields a result envelope; its entry carries
// the not-found error text.
func (s *Server) handleTestProvider(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("provider")

	entry, _ := s.gateway.TestProvider(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  entry,
	})
}

type chatPayload struct {
	Message  *string `json:"message"`
	Provider string  `json:"provider"`
	Model    string  `json:"model"`
}

// handleChat forwards a message to a provider and returns the normalized
// result. The top-level success flag mirrors the result's own.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Message == nil {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	result := s.gateway.SendMessage(r.Context(), gateway.ChatRequest{
		Message:  *payload.Message,
		Provider: payload.Provider,
		Model:    payload.Model,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  result.Success,
		"response": result,
	})
}

// handleNotFound is the catch-all for unknown routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Endpoint not found")
}
