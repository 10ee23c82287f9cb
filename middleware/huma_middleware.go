package middleware

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// HumaRequireSetting fails operations that depend on a secret the process was
// started without. The error names the missing setting.
func HumaRequireSetting(api huma.API, configured bool, setting string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !configured {
			huma.WriteErr(api, ctx, http.StatusInternalServerError, setting+" is not configured")
			return
		}
		next(ctx)
	}
}
