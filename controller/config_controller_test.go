package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"stockplatform/config"
	"stockplatform/model"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gin-gonic/gin"
)

func TestGetActiveConfig(t *testing.T) {
	cm := config.NewConfigManager(&model.RuntimeConfig{RateLimiter: true, FrontendUrls: []string{"http://app.test"}})
	r := newTestAPI(func(_ *gin.RouterGroup, api huma.API) {
		NewConfigController(cm).RegisterRoutes(api)
	})

	w := do(r, http.MethodGet, "/api/config/active", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got model.RuntimeConfig
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.RateLimiter || len(got.FrontendUrls) != 1 || got.FrontendUrls[0] != "http://app.test" {
		t.Errorf("config = %+v", got)
	}
}
