package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/Andrew-Develops/PhysiQuest/internal/http/handlers"
)

func TestHealthcheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterConfig{HealthHandler: httpH.NewHealthHandler()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Fatalf("body = %q, expected %q", w.Body.String(), "ok")
	}
}

// The route tree mixes static segments and parameters at the same
// position; building it must not panic.
func TestRouterBuildsFullRouteTree(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterConfig{
		QuestHandler:  httpH.NewQuestHandler(nil),
		UserHandler:   httpH.NewUserHandler(nil),
		BadgeHandler:  httpH.NewBadgeHandler(nil),
		HealthHandler: httpH.NewHealthHandler(),
	})

	routes := r.Routes()
	want := map[string]bool{
		"GET /api/quest":                             false,
		"POST /api/quest/assign/:username/:questId":  false,
		"PUT /api/quest/complete/:questId":           false,
		"GET /api/user/top":                          false,
		"POST /api/user/create-user-quest":           false,
		"GET /api/user/:user/badges":                 false,
		"DELETE /api/badge/user/:badgeId":            false,
		"GET /api/quest/proof-image-url/:questId":    false,
		"DELETE /api/quest/proof-image-url/:questId": false,
	}
	for _, route := range routes {
		key := route.Method + " " + route.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Fatalf("route %q not registered", key)
		}
	}
}
