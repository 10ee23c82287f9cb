package service

import (
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"

	"stockplatform/model"
)

// decodeModule decodes one quoteSummary module into out. A missing or
// malformed module reports false.
func decodeModule(summary map[string]any, module string, out any) bool {
	raw, ok := summary[module]
	if !ok || raw == nil {
		return false
	}
	if err := mapstructure.Decode(raw, out); err != nil {
		log.Warn().Err(err).Str("module", module).Msg("Could not decode quoteSummary module")
		return false
	}
	return true
}

func yahooValue(raw any) (model.YahooValue, bool) {
	var v model.YahooValue
	if raw == nil {
		return v, false
	}
	if err := mapstructure.Decode(raw, &v); err != nil {
		return v, false
	}
	return v, true
}

func intOf(v model.YahooValue) int64 {
	if v.Raw == nil {
		return 0
	}
	return int64(*v.Raw)
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
