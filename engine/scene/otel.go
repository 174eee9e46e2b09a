package scene

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Carmen-Shannon/oxy-swim/engine/scene"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// initMetrics creates the scene's instruments from the global meter provider.
// Failures are logged and leave the affected instrument unset.
func (s *scene) initMetrics() {
	m := meter()

	var err error
	s.framesCounter, err = m.Int64Counter(
		"swim.scene.frames",
		metric.WithDescription("Total scene updates"),
	)
	if err != nil {
		s.logger.Warn().Err(err).Msg("creating frames counter")
	}

	s.updateTime, err = m.Float64Histogram(
		"swim.scene.update.duration",
		metric.WithDescription("Wall time of one scene update"),
		metric.WithUnit("s"),
	)
	if err != nil {
		s.logger.Warn().Err(err).Msg("creating update histogram")
	}

	swimmers, err := m.Int64ObservableGauge(
		"swim.scene.swimmers",
		metric.WithDescription("Current number of swimmers in the scene"),
	)
	if err != nil {
		s.logger.Warn().Err(err).Msg("creating swimmers gauge")
		return
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(swimmers, int64(s.Count()),
				metric.WithAttributes(attribute.String("scene", s.Name())))
			return nil
		},
		swimmers,
	)
	if err != nil {
		s.logger.Warn().Err(err).Msg("registering swimmers callback")
	}
}
