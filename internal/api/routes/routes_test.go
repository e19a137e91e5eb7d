package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"relief-coordination-api/internal/api/handlers"
	"relief-coordination-api/internal/auth"
	"relief-coordination-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newRouter(campaigns *handlers.CampaignHandler) (*gin.Engine, *auth.TokenManager) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenManager("routes-secret", time.Hour)
	return SetupRouter(Dependencies{
		Log:           zap.NewNop(),
		Tokens:        tokens,
		Auth:          &handlers.AuthHandler{Tokens: tokens},
		Inventory:     &handlers.InventoryHandler{},
		Organizations: &handlers.OrganizationHandler{},
		Alerts:        &handlers.AlertHandler{},
		Campaigns:     campaigns,
		WebSocket:     &handlers.WebSocketHandler{Tokens: tokens, Log: zap.NewNop()},
	}), tokens
}

func serve(r http.Handler, method, path, token string) int {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestPublicRoutes(t *testing.T) {
	r, _ := newRouter(nil)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/healthz", ""))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/inventory/catalog", ""))
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/v1/ws", ""))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, tokens := newRouter(nil)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/v1/inventory/HOSP-001", ""))

	orgToken, _ := tokens.Generate("ops@hospital.org", models.RoleOrganization, "HOSP-001")
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/api/v1/admin/inventory/rank", orgToken))
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/api/v1/inventory/HOSP-002", orgToken))
}

func TestCampaignRoutesMountedOnlyWithLedger(t *testing.T) {
	r, tokens := newRouter(nil)
	token, _ := tokens.Generate("admin@relief.org", models.RoleAdmin, "")
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/v1/campaigns/CMP-1", token))

	r, tokens = newRouter(&handlers.CampaignHandler{})
	token, _ = tokens.Generate("ops@hospital.org", models.RoleOrganization, "HOSP-001")
	// Reaches the handler, which rejects the empty body before touching the ledger.
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/api/v1/campaigns/CMP-1/donations", token))
}
