package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/bsv-blockchain/go-sdk/script"
)

// Outpoint identifies a transaction output by its transaction id and output index.
type Outpoint struct {
	Txid        chainhash.Hash
	OutputIndex uint32
}

// String returns the outpoint in "<txid>.<outputIndex>" form.
func (o Outpoint) String() string {
	return fmt.Sprintf("%s.%d", o.Txid.String(), o.OutputIndex)
}

// NewOutpointFromString parses an outpoint in "<txid>.<outputIndex>" form.
func NewOutpointFromString(s string) (*Outpoint, error) {
	txid, vout, ok := strings.Cut(s, ".")
	if !ok {
		return nil, fmt.Errorf("invalid outpoint %q: missing output index", s)
	}
	hash, err := chainhash.NewHashFromHex(txid)
	if err != nil {
		return nil, fmt.Errorf("invalid outpoint %q: %w", s, err)
	}
	idx, err := strconv.ParseUint(vout, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid outpoint %q: %w", s, err)
	}
	return &Outpoint{Txid: *hash, OutputIndex: uint32(idx)}, nil
}

// Output is a transaction output admitted into a topic.
type Output struct {
	Outpoint Outpoint       `json:"-"`
	Topic    string         `json:"topic"`
	Script   *script.Script `json:"-"`
	Satoshis uint64         `json:"satoshis"`
	Spent    bool           `json:"spent"`
}

func (o *Output) MarshalJSON() ([]byte, error) {
	var lockingScript string
	if o.Script != nil {
		lockingScript = o.Script.String()
	}
	return json.Marshal(map[string]interface{}{
		"txid":        o.Outpoint.Txid.String(),
		"outputIndex": o.Outpoint.OutputIndex,
		"satoshis":    o.Satoshis,
		"script":      lockingScript,
		"spent":       o.Spent,
		"topic":       o.Topic,
	})
}
