package ml

import (
	"math"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
)

// FeatureCount is the length of the vector produced by BuildFeatures.
const FeatureCount = 24

// highAmountFeatureThreshold mirrors the high-amount cutoff used when the
// classifier was trained.
const highAmountFeatureThreshold = 100000

// BuildFeatures derives the fixed, ordered feature vector from a raw
// transaction. The derivation must stay identical to the one used at
// classifier training time: column order and formulas are part of the model
// contract, not of this service.
//
// Order: step, amount, oldbalanceOrg, newbalanceOrig, oldbalanceDest,
// newbalanceDest, balance_change_orig, balance_change_dest,
// error_balance_orig, error_balance_dest, orig_zero_after, dest_zero_before,
// orig_zero_before, dest_zero_after, amount_to_orig_ratio,
// amount_to_dest_ratio, high_amount, is_cash_out, is_transfer, is_payment,
// is_cash_in, is_debit, round_amount, exact_balance_transfer.
func BuildFeatures(txn port.RawTransaction) []float64 {
	balanceChangeOrig := txn.NewBalanceOrig - txn.OldBalanceOrig
	balanceChangeDest := txn.NewBalanceDest - txn.OldBalanceDest

	features := make([]float64, 0, FeatureCount)
	features = append(features,
		float64(txn.Step),
		txn.Amount,
		txn.OldBalanceOrig,
		txn.NewBalanceOrig,
		txn.OldBalanceDest,
		txn.NewBalanceDest,
		balanceChangeOrig,
		balanceChangeDest,
		balanceChangeOrig+txn.Amount,
		balanceChangeDest-txn.Amount,
		boolFeature(txn.NewBalanceOrig == 0),
		boolFeature(txn.OldBalanceDest == 0),
		boolFeature(txn.OldBalanceOrig == 0),
		boolFeature(txn.NewBalanceDest == 0),
		txn.Amount/(txn.OldBalanceOrig+1),
		txn.Amount/(txn.OldBalanceDest+1),
		boolFeature(txn.Amount > highAmountFeatureThreshold),
		boolFeature(txn.Type == "CASH_OUT"),
		boolFeature(txn.Type == "TRANSFER"),
		boolFeature(txn.Type == "PAYMENT"),
		boolFeature(txn.Type == "CASH_IN"),
		boolFeature(txn.Type == "DEBIT"),
		boolFeature(math.Mod(txn.Amount, 1) == 0),
		boolFeature(txn.Amount == txn.OldBalanceOrig),
	)
	return features
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
