package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/silversons/circus-site/internal/domain"
)

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// TownsAPI handles GET /api/towns: the classifier output serialized verbatim,
// consumed by the client-side carousel and any external integrations.
func (s *Server) TownsAPI(w http.ResponseWriter, r *http.Request) {
	towns, err := s.towns.Towns(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			s.logger.Error("towns unavailable", "error", err)
			s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{
				Error: errorDetail{Code: "unavailable", Message: "ticketing data unavailable"},
			})
			return
		}
		s.logger.Error("towns api", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal", Message: "internal server error"},
		})
		return
	}
	if towns == nil {
		towns = []domain.TownRecord{}
	}
	s.writeJSON(w, http.StatusOK, towns)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
