package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/netip"
	"svc-mute/domain"
	errs "svc-mute/errors"
	"svc-mute/services"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type MuteServer struct {
	muteService services.IMuteService
	validate    *validator.Validate
	log         *slog.Logger
}

func NewMuteServer(log *slog.Logger, muteService services.IMuteService) *MuteServer {
	return &MuteServer{muteService: muteService, validate: validator.New(), log: log}
}

type OverrideRequest struct {
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}

type SessionRequest struct {
	Address string `json:"address" validate:"omitempty,ip"`
}

type MutedResponse struct {
	Subject string `json:"subject"`
	Muted   bool   `json:"muted"`
}

type SessionResponse struct {
	Subject     string    `json:"subject"`
	Address     string    `json:"address,omitempty"`
	ConnectedAt time.Time `json:"connected_at"`
}

// Routes exposes the mute checks, the local overrides and the sessions.
func (s *MuteServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/backends", s.getBackends)
		r.Get("/subjects/{id}/muted", s.getMuted)
		r.Put("/overrides/{id}", s.putOverride)
		r.Delete("/overrides/{id}", s.deleteOverride)
		r.Put("/sessions/{id}", s.putSession)
		r.Delete("/sessions/{id}", s.deleteSession)
	})
	return r
}

func (s *MuteServer) getBackends(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"backends": s.muteService.Backends()})
}

func (s *MuteServer) getMuted(w http.ResponseWriter, r *http.Request) {
	subject, ok := s.subject(w, r)
	if !ok {
		return
	}
	muted := s.muteService.IsMuted(r.Context(), subject)
	respondJSON(w, http.StatusOK, MutedResponse{Subject: subject.String(), Muted: muted})
}

func (s *MuteServer) putOverride(w http.ResponseWriter, r *http.Request) {
	subject, ok := s.subject(w, r)
	if !ok {
		return
	}
	var body OverrideRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := s.muteService.AddOverride(r.Context(), subject, body.ExpiresAt); err != nil {
		s.failure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *MuteServer) deleteOverride(w http.ResponseWriter, r *http.Request) {
	subject, ok := s.subject(w, r)
	if !ok {
		return
	}
	if err := s.muteService.RemoveOverride(r.Context(), subject); err != nil {
		s.failure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *MuteServer) putSession(w http.ResponseWriter, r *http.Request) {
	subject, ok := s.subject(w, r)
	if !ok {
		return
	}
	var body SessionRequest
	if !s.decode(w, r, &body) {
		return
	}
	var address netip.Addr
	if body.Address != "" {
		parsed, err := netip.ParseAddr(body.Address)
		if err != nil {
			respondError(w, http.StatusBadRequest, errs.ErrInvalidAddress.Error())
			return
		}
		address = parsed
	}
	session := s.muteService.Connect(subject, address)
	response := SessionResponse{Subject: session.Subject.String(), ConnectedAt: session.ConnectedAt}
	if session.Address.IsValid() {
		response.Address = session.Address.String()
	}
	respondJSON(w, http.StatusOK, response)
}

func (s *MuteServer) deleteSession(w http.ResponseWriter, r *http.Request) {
	subject, ok := s.subject(w, r)
	if !ok {
		return
	}
	s.muteService.Disconnect(subject)
	w.WriteHeader(http.StatusNoContent)
}

func (s *MuteServer) subject(w http.ResponseWriter, r *http.Request) (domain.Subject, bool) {
	subject, err := domain.ParseSubject(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return domain.Subject{}, false
	}
	return subject, true
}

func (s *MuteServer) decode(w http.ResponseWriter, r *http.Request, body any) bool {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// failure reports persistence problems. The mutation itself already applied.
func (s *MuteServer) failure(w http.ResponseWriter, err error) {
	s.log.Error("Override mutation not persisted", "error", err)
	if errors.Is(err, errs.ErrPersistence) {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
