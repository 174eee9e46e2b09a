package animator

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Carmen-Shannon/oxy-swim/engine/animator"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
