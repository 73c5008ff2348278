package tx

import (
	"fmt"
	"math"

	"github.com/bsv-blockchain/go-sdk/transaction"
)

// DefaultFeeRate is the minimum accepted fee rate in satoshis per byte.
const DefaultFeeRate = uint64(1)

// perInputSigBytes is the serialized allowance for one input's signature
// material, absent until the host signs.
const perInputSigBytes = 66

// EstimateSize returns the expected serialized size of t once signed.
func EstimateSize(t *transaction.Transaction) int {
	return len(t.Bytes()) + len(t.Inputs)*perInputSigBytes
}

// WorstCaseSize returns an upper bound on the signed size of a
// transaction with the given input and output counts, for sizing fee
// budgets before inputs are chosen.
func WorstCaseSize(inputs, outputs int) int {
	const overhead = 10
	const perInput = 41 + perInputSigBytes
	const perOutput = 43
	return overhead + inputs*perInput + outputs*perOutput
}

// CheckFeeRate verifies the effective fee rate, pending ancestry
// included, reaches at least minRate satoshis per byte of the estimated
// signed size. A builder with no inputs passes trivially.
func (b *Builder) CheckFeeRate(minRate uint64) error {
	if b.inputs.Len() == 0 {
		return nil
	}
	fee, err := b.FeePaid()
	if err != nil {
		return err
	}
	if fee > math.MaxUint64-b.ancestorFee {
		return ErrMath
	}
	fee += b.ancestorFee
	size := uint64(EstimateSize(b.tx)) + b.ancestorSize
	needed := size * minRate
	if minRate != 0 && needed/minRate != size {
		return ErrMath
	}
	if fee < needed {
		return fmt.Errorf("%w: paid %d, need %d for %d bytes",
			ErrFeeRateTooLow, fee, needed, size)
	}
	return nil
}
