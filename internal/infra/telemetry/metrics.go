package telemetry

import (
	"context"

	resolverapp "github.com/osvaldoandrade/spaceschema/internal/app/resolver"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// LookupMeterName is the instrumentation scope for schema lookup metrics.
const LookupMeterName = "github.com/osvaldoandrade/spaceschema/resolver"

// LookupMetrics counts schema lookups by outcome.
type LookupMetrics struct {
	lookups metric.Int64Counter
	reads   metric.Int64Counter
}

// NewLookupMetrics returns nil when provider is nil. The nil value records
// nothing.
func NewLookupMetrics(provider metric.MeterProvider) (*LookupMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(LookupMeterName)

	lookups, err := meter.Int64Counter(
		"spaceschema.schema.lookups",
		metric.WithDescription("Schema lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	reads, err := meter.Int64Counter(
		"spaceschema.schema.reads",
		metric.WithDescription("Schema files read from the source"),
		metric.WithUnit("{read}"),
	)
	if err != nil {
		return nil, err
	}

	return &LookupMetrics{lookups: lookups, reads: reads}, nil
}

func (m *LookupMetrics) RecordLookup(ctx context.Context, version int, outcome resolverapp.Outcome) {
	if m == nil || m.lookups == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.Int("schema.version", version),
		attribute.String("outcome", string(outcome)),
	)
	m.lookups.Add(ctx, 1, attrs)
	if outcome == resolverapp.OutcomeLoaded && m.reads != nil {
		m.reads.Add(ctx, 1, metric.WithAttributes(attribute.Int("schema.version", version)))
	}
}
