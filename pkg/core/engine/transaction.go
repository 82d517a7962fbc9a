package engine

import (
	"errors"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/transaction"
)

// ParseTransaction decodes the subject transaction of a BEEF payload. When the
// payload is not BEEF it is decoded as a raw serialized transaction.
// Parser panics on malformed input are converted into ErrInvalidTransaction.
func ParseTransaction(b []byte) (tx *transaction.Transaction, err error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidTransaction)
	}

	defer func() {
		if r := recover(); r != nil {
			tx, err = nil, fmt.Errorf("%w: %v", ErrInvalidTransaction, r)
		}
	}()

	_, tx, _, beefErr := transaction.ParseBeef(b)
	if beefErr == nil && tx != nil {
		return tx, nil
	}

	tx, rawErr := transaction.NewTransactionFromBytes(b)
	if rawErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTransaction, errors.Join(beefErr, rawErr))
	}
	return tx, nil
}
