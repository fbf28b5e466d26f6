package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchroom-server/internal/core"
	database "matchroom-server/internal/db"
)

func TestLoginIssuesAndAcceptsTokens(t *testing.T) {
	require.NoError(t, database.Init(filepath.Join(t.TempDir(), "login_test.db")))

	cfg := testConfig(2, time.Minute)
	registry, err := core.NewRegistry(cfg.RoomCapacity)
	require.NoError(t, err)
	hub := core.NewHub(cfg)
	t.Cleanup(hub.Stop)
	s := New(cfg, registry, hub)

	body, _ := json.Marshal(LoginRequest{Name: "alice"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	s.LoginHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	userId, err := uuid.Parse(resp.UserId)
	require.NoError(t, err)

	// a returning client presents its token and keeps its identity
	body, _ = json.Marshal(LoginRequest{Token: resp.Token})
	req = httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rr = httptest.NewRecorder()
	s.LoginHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var again LoginResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&again))
	assert.Equal(t, userId.String(), again.UserId)
	assert.Equal(t, resp.Token, again.Token)
}
