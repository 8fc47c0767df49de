package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
	Port        int
}

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	handler := promhttp.Handler()

	return provider, handler, nil
}

// EngineMetrics bundles the instruments the risk engine reports on.
type EngineMetrics struct {
	OutcomesRecorded   metric.Int64Counter
	FraudOutcomes      metric.Int64Counter
	Escalations        metric.Int64Counter
	Blacklists         metric.Int64Counter
	ValidationsBlocked metric.Int64Counter
}

// NewEngineMetrics registers the engine instruments on the given provider.
func NewEngineMetrics(provider *sdkmetric.MeterProvider, serviceName string) (*EngineMetrics, error) {
	meter := provider.Meter(serviceName)

	outcomes, err := meter.Int64Counter("risk_outcomes_recorded_total",
		metric.WithDescription("Transaction outcomes applied to risk profiles"))
	if err != nil {
		return nil, err
	}
	fraud, err := meter.Int64Counter("risk_fraud_outcomes_total",
		metric.WithDescription("Outcomes recorded as fraudulent"))
	if err != nil {
		return nil, err
	}
	escalations, err := meter.Int64Counter("risk_escalations_total",
		metric.WithDescription("Warning flags raised by threshold crossings"))
	if err != nil {
		return nil, err
	}
	blacklists, err := meter.Int64Counter("risk_blacklists_total",
		metric.WithDescription("Profiles transitioned to the blacklist"))
	if err != nil {
		return nil, err
	}
	blocked, err := meter.Int64Counter("risk_validations_blocked_total",
		metric.WithDescription("Validation verdicts that blocked a transaction"))
	if err != nil {
		return nil, err
	}

	return &EngineMetrics{
		OutcomesRecorded:   outcomes,
		FraudOutcomes:      fraud,
		Escalations:        escalations,
		Blacklists:         blacklists,
		ValidationsBlocked: blocked,
	}, nil
}
