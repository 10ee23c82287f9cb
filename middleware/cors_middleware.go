package middleware

import (
	"slices"
	"time"

	"stockplatform/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the origins listed in the live config. The list is read on
// every preflight so a reload takes effect without a restart. An empty list
// leaves the API open, as a local dashboard backend.
func CORS(cfg *config.ConfigManager) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			origins := cfg.GetConfig().FrontendUrls
			return len(origins) == 0 || slices.Contains(origins, origin)
		},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length", DataStatusHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// DataStatusHeader tells clients whether a 200 listing is real data or an
// empty default.
const DataStatusHeader = "X-Data-Status"
