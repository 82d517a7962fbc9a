package helloworld

import (
	"context"
	"fmt"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/pushdrop"
	"github.com/bsv-blockchain/go-sdk/overlay"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/gookit/slog"
)

// TopicName is the topic under which HelloWorld outputs are admitted.
const TopicName = "tm_helloworld"

// TopicManager admits outputs carrying a signed HelloWorld message.
type TopicManager struct{}

func NewTopicManager() *TopicManager {
	return &TopicManager{}
}

// IdentifyAdmissibleOutputs admits every output that decodes as a PushDrop token
// whose signature verifies over all of its fields and whose first field is a
// message of at least two characters. Invalid outputs are skipped and an
// unparsable transaction yields an empty decision. It never returns an error.
// previousCoins is not used by this protocol: HelloWorld coins are never retained.
func (tm *TopicManager) IdentifyAdmissibleOutputs(_ context.Context, beef []byte, _ []uint32) (overlay.AdmittanceInstructions, error) {
	admit := overlay.AdmittanceInstructions{
		OutputsToAdmit: []uint32{},
		CoinsToRetain:  []uint32{},
	}

	tx, err := engine.ParseTransaction(beef)
	if err != nil {
		slog.WithFields(slog.M{"topic": TopicName}).Debugf("unable to parse transaction: %v", err)
		return admit, nil
	}

	for vout, output := range tx.Outputs {
		if err := admissible(output.LockingScript); err != nil {
			slog.WithFields(slog.M{
				"topic":       TopicName,
				"txid":        tx.TxID().String(),
				"outputIndex": vout,
			}).Debugf("output not admitted: %v", err)
			continue
		}
		admit.OutputsToAdmit = append(admit.OutputsToAdmit, uint32(vout)) //nolint:gosec // index bounded by slice length
	}

	if len(admit.OutputsToAdmit) > 0 {
		slog.WithFields(slog.M{"topic": TopicName, "txid": tx.TxID().String()}).
			Infof("admitting %d output(s)", len(admit.OutputsToAdmit))
	}
	return admit, nil
}

// admissible checks a single locking script against the HelloWorld rules.
func admissible(lockingScript *script.Script) error {
	token, err := pushdrop.Decode(lockingScript)
	if err != nil {
		return err
	}
	if len(token.Fields) < 1 {
		return fmt.Errorf("%w: token has no fields", ErrInvalidMessage)
	}
	if err := pushdrop.Verify(token); err != nil {
		return err
	}
	_, err = tokenMessage(token)
	return err
}

func (tm *TopicManager) GetDocumentation() string {
	return TopicManagerDocumentation
}

func (tm *TopicManager) GetMetaData() *overlay.MetaData {
	return &overlay.MetaData{
		Name:        "HelloWorld Topic Manager",
		Description: "What's your message to the world?",
	}
}

var _ engine.TopicManager = (*TopicManager)(nil)
