// Package pushdrop decodes and encodes Pay-to-Push-Drop locking scripts: a set of
// data fields pushed onto the stack and dropped again, bound to a single owner
// through a public key and OP_CHECKSIG, with the last pushed field carrying the
// owner's signature over the remaining fields.
package pushdrop

import (
	"bytes"
	"errors"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	hash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/bsv-blockchain/go-sdk/script"
)

var (
	// ErrDecode is returned when a locking script is not a well-formed PushDrop script.
	ErrDecode = errors.New("decode-error")
	// ErrSignatureVerification is returned when the token signature does not verify
	// against the locking public key.
	ErrSignatureVerification = errors.New("signature-verification-error")
)

// Position describes where the public key and OP_CHECKSIG are placed relative to the fields.
type Position int

const (
	// PositionBefore places "<pubkey> OP_CHECKSIG" in front of the pushed fields.
	PositionBefore Position = iota
	// PositionAfter places "<pubkey> OP_CHECKSIG" after the drop opcodes.
	PositionAfter
)

// Small-number opcodes used by minimally encoded pushes.
const (
	op0         = 0x00
	opPushData4 = 0x4e
	op1Negate   = 0x4f
	op1         = 0x51
	op16        = 0x60
)

// Token is a decoded PushDrop output.
type Token struct {
	Fields           [][]byte
	LockingPublicKey *ec.PublicKey
	Signature        []byte
}

// Payload returns the concatenation of all token fields, i.e. the signed data.
func (t *Token) Payload() []byte {
	return bytes.Join(t.Fields, nil)
}

// Decode parses a PushDrop locking script. Both lock positions are recognised.
// Any malformed input yields an error wrapping ErrDecode.
func Decode(s *script.Script) (*Token, error) {
	if s == nil || len(*s) == 0 {
		return nil, fmt.Errorf("%w: empty script", ErrDecode)
	}
	chunks, err := s.Chunks()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(chunks) < 5 {
		return nil, fmt.Errorf("%w: expected at least 5 script chunks, got %d", ErrDecode, len(chunks))
	}

	var keyChunk *script.ScriptChunk
	var body []*script.ScriptChunk
	switch {
	case chunks[1].Op == script.OpCHECKSIG:
		keyChunk, body = chunks[0], chunks[2:]
	case chunks[len(chunks)-1].Op == script.OpCHECKSIG:
		keyChunk, body = chunks[len(chunks)-2], chunks[:len(chunks)-2]
	default:
		return nil, fmt.Errorf("%w: missing OP_CHECKSIG", ErrDecode)
	}

	if len(keyChunk.Data) == 0 {
		return nil, fmt.Errorf("%w: missing locking public key", ErrDecode)
	}
	pub, err := ec.PublicKeyFromBytes(keyChunk.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid locking public key: %w", ErrDecode, err)
	}

	pushes, err := splitFields(body)
	if err != nil {
		return nil, err
	}
	if len(pushes) < 2 {
		return nil, fmt.Errorf("%w: expected at least one field and a signature", ErrDecode)
	}

	return &Token{
		Fields:           pushes[:len(pushes)-1],
		LockingPublicKey: pub,
		Signature:        pushes[len(pushes)-1],
	}, nil
}

// splitFields reads the pushed values from body and checks that the trailing
// OP_DROP / OP_2DROP opcodes remove exactly those values.
func splitFields(body []*script.ScriptChunk) ([][]byte, error) {
	var fields [][]byte
	i := 0
	for ; i < len(body); i++ {
		op := body[i].Op
		if op == script.OpDROP || op == script.Op2DROP {
			break
		}
		field, ok := pushValue(body[i])
		if !ok {
			return nil, fmt.Errorf("%w: unexpected opcode 0x%02x in field section", ErrDecode, op)
		}
		fields = append(fields, field)
	}

	dropped := 0
	for ; i < len(body); i++ {
		switch body[i].Op {
		case script.OpDROP:
			dropped++
		case script.Op2DROP:
			dropped += 2
		default:
			return nil, fmt.Errorf("%w: unexpected opcode 0x%02x in drop section", ErrDecode, body[i].Op)
		}
	}
	if dropped != len(fields) {
		return nil, fmt.Errorf("%w: %d fields pushed but %d dropped", ErrDecode, len(fields), dropped)
	}
	return fields, nil
}

func pushValue(chunk *script.ScriptChunk) ([]byte, bool) {
	switch {
	case len(chunk.Data) > 0:
		return chunk.Data, true
	case chunk.Op == op0:
		return []byte{}, true
	case chunk.Op == op1Negate:
		return []byte{0x81}, true
	case chunk.Op >= op1 && chunk.Op <= op16:
		return []byte{chunk.Op - op1 + 1}, true
	case chunk.Op <= opPushData4:
		// zero-length explicit push
		return []byte{}, true
	}
	return nil, false
}

// Lock builds a PushDrop locking script carrying fields followed by signature.
func Lock(pub *ec.PublicKey, fields [][]byte, signature []byte, position Position) (*script.Script, error) {
	if pub == nil {
		return nil, errors.New("locking public key is required")
	}
	if len(fields) == 0 {
		return nil, errors.New("at least one field is required")
	}

	lock := &script.Script{}
	if position == PositionBefore {
		if err := appendLock(lock, pub); err != nil {
			return nil, err
		}
	}

	pushes := append(append([][]byte{}, fields...), signature)
	for _, field := range pushes {
		if err := appendMinimalPush(lock, field); err != nil {
			return nil, err
		}
	}
	for remaining := len(pushes); remaining > 0; {
		if remaining > 1 {
			if err := lock.AppendOpcodes(script.Op2DROP); err != nil {
				return nil, err
			}
			remaining -= 2
			continue
		}
		if err := lock.AppendOpcodes(script.OpDROP); err != nil {
			return nil, err
		}
		remaining--
	}

	if position == PositionAfter {
		if err := appendLock(lock, pub); err != nil {
			return nil, err
		}
	}
	return lock, nil
}

func appendLock(s *script.Script, pub *ec.PublicKey) error {
	if err := s.AppendPushData(pub.Compressed()); err != nil {
		return err
	}
	return s.AppendOpcodes(script.OpCHECKSIG)
}

func appendMinimalPush(s *script.Script, data []byte) error {
	switch {
	case len(data) == 0:
		return s.AppendOpcodes(op0)
	case len(data) == 1 && data[0] >= 1 && data[0] <= 16:
		return s.AppendOpcodes(op1 + data[0] - 1)
	case len(data) == 1 && data[0] == 0x81:
		return s.AppendOpcodes(op1Negate)
	}
	return s.AppendPushData(data)
}

// Sign produces a DER encoded signature over the concatenated fields.
func Sign(priv *ec.PrivateKey, fields [][]byte) ([]byte, error) {
	sig, err := priv.Sign(hash.Sha256(bytes.Join(fields, nil)))
	if err != nil {
		return nil, fmt.Errorf("failed to sign pushdrop fields: %w", err)
	}
	return sig.Serialize(), nil
}

// Verify checks the token signature against the concatenation of all fields
// using the locking public key.
func Verify(token *Token) error {
	sig, err := ec.ParseDERSignature(token.Signature)
	if err != nil {
		return fmt.Errorf("%w: malformed signature: %w", ErrSignatureVerification, err)
	}
	if !sig.Verify(hash.Sha256(token.Payload()), token.LockingPublicKey) {
		return ErrSignatureVerification
	}
	return nil
}
