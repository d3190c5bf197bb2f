package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/mapboard/internal/common"
	"github.com/dmitrijs2005/mapboard/internal/server/models"
	"github.com/dmitrijs2005/mapboard/internal/server/services"
)

const msgBadBody = "Invalid request body"

type tokenResponse struct {
	Token string `json:"token"`
}

type cardsResponse struct {
	Cards []*models.Card `json:"cards"`
}

type cardResponse struct {
	Card *models.Card `json:"card"`
}

type markerResponse struct {
	Marker *models.Marker `json:"marker"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// owner reads the username placed in the context by Authenticate.
func owner(r *http.Request) string {
	username, _ := UsernameFromContext(r.Context())
	return username
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in services.Credentials
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeMessage(w, r, http.StatusBadRequest, msgBadBody)
		return
	}

	_, err := s.users.Register(r.Context(), in.Username, in.Password)
	switch {
	case err == nil:
		s.writeMessage(w, r, http.StatusOK, "Registration successful")
	case errors.Is(err, common.ErrAlreadyExists):
		s.writeMessage(w, r, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, common.ErrValidation):
		s.writeMessage(w, r, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error(r.Context(), "register failed", "error", err)
		s.writeMessage(w, r, http.StatusInternalServerError, "Registration failed")
	}
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in services.Credentials
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeMessage(w, r, http.StatusBadRequest, msgBadBody)
		return
	}

	token, err := s.users.Login(r.Context(), in.Username, in.Password)
	switch {
	case err == nil:
		s.writeJSON(w, r, http.StatusOK, tokenResponse{Token: token})
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeMessage(w, r, http.StatusUnauthorized, "Invalid credentials")
	default:
		s.logger.Error(r.Context(), "login failed", "error", err)
		s.writeMessage(w, r, http.StatusInternalServerError, "Login failed")
	}
}

func (s *HTTPServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	cards, err := s.cards.List(r.Context(), owner(r))
	if err != nil {
		s.logger.Error(r.Context(), "list cards failed", "error", err)
		s.writeMessage(w, r, http.StatusInternalServerError, "Failed to fetch cards")
		return
	}
	if cards == nil {
		cards = []*models.Card{}
	}
	s.writeJSON(w, r, http.StatusOK, cardsResponse{Cards: cards})
}

func (s *HTTPServer) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var in services.CardInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeMessage(w, r, http.StatusBadRequest, msgBadBody)
		return
	}

	card, err := s.cards.Create(r.Context(), owner(r), in)
	switch {
	case err == nil:
		s.writeJSON(w, r, http.StatusOK, cardResponse{Card: card})
	case errors.Is(err, common.ErrValidation):
		s.writeMessage(w, r, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error(r.Context(), "create card failed", "error", err)
		s.writeMessage(w, r, http.StatusInternalServerError, "Failed to add card")
	}
}

func (s *HTTPServer) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	err := s.cards.Delete(r.Context(), owner(r), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		s.writeMessage(w, r, http.StatusOK, "Card deleted successfully")
	case errors.Is(err, common.ErrorNotFound):
		s.writeMessage(w, r, http.StatusNotFound, "Card not found")
	default:
		s.logger.Error(r.Context(), "delete card failed", "error", err)
		s.writeMessage(w, r, http.StatusInternalServerError, "Failed to delete card")
	}
}

func (s *HTTPServer) handleMap(w http.ResponseWriter, r *http.Request) {
	view, err := s.markers.MapView(r.Context(), owner(r))
	if err != nil {
		s.logger.Error(r.Context(), "map view failed", "error", err)
		s.writeMessage(w, r, http.StatusInternalServerError, "Failed to fetch map data")
		return
	}
	if view.Markers == nil {
		view.Markers = []*models.Marker{}
	}
	s.writeJSON(w, r, http.StatusOK, view)
}

func (s *HTTPServer) handleCreateMarker(w http.ResponseWriter, r *http.Request) {
	var in services.MarkerInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeMessage(w, r, http.StatusBadRequest, msgBadBody)
		return
	}

	marker, err := s.markers.Create(r.Context(), owner(r), in)
	switch {
	case err == nil:
		s.writeJSON(w, r, http.StatusOK, markerResponse{Marker: marker})
	case errors.Is(err, common.ErrValidation):
		s.writeMessage(w, r, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error(r.Context(), "create marker failed", "error", err)
		s.writeMessage(w, r, http.StatusInternalServerError, "Failed to save marker")
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.PingContext(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err)
			s.writeMessage(w, r, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
	}
	s.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
}
