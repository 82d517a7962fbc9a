package engine

import (
	"context"

	"github.com/bsv-blockchain/go-sdk/overlay"
)

// TopicManager decides which outputs of a transaction are admitted into its topic.
//
// previousCoins lists the indices of the transaction inputs that spend outputs
// already admitted into the topic. The returned instructions may retain some of
// them as still relevant.
type TopicManager interface {
	IdentifyAdmissibleOutputs(ctx context.Context, beef []byte, previousCoins []uint32) (overlay.AdmittanceInstructions, error)
	GetDocumentation() string
	GetMetaData() *overlay.MetaData
}
