// Package fixture serves the demo dataset used for demo usernames and offline fallback.
package fixture

import (
	_ "embed"
	"sync"
	"time"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/entity"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/normalizer"
)

// Username is the account name carried by the raw demo payload
const Username = "tech_visionary"

//go:embed demo.json
var demoPayload []byte

// Clock pins synthesized values so every load is identical
var clock = time.Date(2023, 10, 25, 12, 0, 0, 0, time.UTC)

var demo = sync.OnceValue(func() entity.AnalyticsResult {
	n := normalizer.New(normalizer.WithClock(func() time.Time { return clock }))
	result, err := n.TransformJSON(Username, demoPayload)
	if err != nil {
		panic("fixture: embedded demo payload is not valid JSON: " + err.Error())
	}
	return result
})

// Load returns the demo result with the profile renamed to username.
// Each call returns an independent copy.
func Load(username string) entity.AnalyticsResult {
	result := demo().Clone()
	if username != "" {
		result.Profile.Username = username
	}
	return result
}
