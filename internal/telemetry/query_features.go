package telemetry

import (
	"context"

	"github.com/petasbytes/workdesk/internal/metrics"
)

// EmitQueryFeatures records size features of a raw user query during
// calibration runs. Outside calibration mode it is a no-op.
func EmitQueryFeatures(ctx context.Context, query string) {
	if !(CalibrationModeEnabled() && ObserveEnabled()) {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	f := metrics.CountFeatures(query)
	Emit("query_features", map[string]any{
		"turn_id":          turnID,
		"features_version": "1",
		"query": map[string]any{
			"bytes": f.Bytes,
			"runes": f.Runes,
			"words": f.Words,
			"lines": f.Lines,
		},
	})
}
