package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"matchroom-server/internal/auth"
	"matchroom-server/internal/core"
)

type LoginRequest struct {
	Name  string
	Token string
}

type LoginResponse struct {
	UserId string
	Token  string
}

func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var loginRequest LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		errorResponse(w)
		return
	}

	if len(loginRequest.Token) == 0 {
		player, err := core.AddPlayer(loginRequest.Name)
		if err != nil {
			errorResponse(w)
			return
		}

		token, err := auth.GenerateToken(player.ID)
		if err != nil {
			errorResponse(w)
			return
		}

		okResponse(player.ID, token, w)
		return
	}

	id, err := auth.CheckToken(loginRequest.Token)
	if err != nil {
		errorResponse(w)
		return
	}

	okResponse(id, loginRequest.Token, w)
}

func okResponse(playerId uuid.UUID, token string, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	payload := LoginResponse{playerId.String(), token}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		return
	}
}

func errorResponse(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
}
