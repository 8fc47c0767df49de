package ml

import (
	"context"
	"log/slog"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
)

// Feature vector positions consumed by the stub heuristic.
const (
	featureErrorBalanceOrig = 8
	featureHighAmount       = 16
	featureIsCashOut        = 17
	featureIsTransfer       = 18
)

// StubModelClient implements port.ModelClient for development. The trained
// classifier is served out of process; this stub approximates its output
// with the strongest single signal from the training data: the originator's
// balance arithmetic not adding up on a TRANSFER or CASH_OUT.
type StubModelClient struct {
	logger *slog.Logger
}

// NewStubModelClient creates a new stub classifier client.
func NewStubModelClient(logger *slog.Logger) *StubModelClient {
	return &StubModelClient{logger: logger}
}

var _ port.ModelClient = (*StubModelClient)(nil)

// Predict returns a deterministic fraud probability in [0,1] so assessment
// flows can be exercised end to end without the real model.
func (c *StubModelClient) Predict(ctx context.Context, txn port.RawTransaction) (float64, error) {
	features := BuildFeatures(txn)

	probability := 0.05

	movesFunds := features[featureIsCashOut] == 1 || features[featureIsTransfer] == 1
	if movesFunds && features[featureErrorBalanceOrig] != 0 {
		probability = 0.85
	}
	if movesFunds && features[featureHighAmount] == 1 {
		probability += 0.10
	}
	if probability > 1 {
		probability = 1
	}

	c.logger.Debug("stub classifier prediction",
		slog.String("type", txn.Type),
		slog.Float64("probability", probability),
	)

	return probability, nil
}
