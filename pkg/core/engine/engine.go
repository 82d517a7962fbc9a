package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bsv-blockchain/go-sdk/overlay"
	"github.com/bsv-blockchain/go-sdk/overlay/lookup"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/gookit/slog"
	"k8s.io/utils/set"
)

var (
	// TRUE is a boolean true value
	TRUE = true
	// FALSE is a boolean false value
	FALSE = false
)

var (
	// ErrUnknownTopic is returned when a topic is not found in the engine
	ErrUnknownTopic = errors.New("unknown-topic")
	// ErrUnknownService is returned when a lookup service is not found in the engine
	ErrUnknownService = errors.New("unknown-service")
	// ErrInvalidTransaction is returned when the submitted transaction cannot be decoded
	ErrInvalidTransaction = errors.New("invalid-transaction")
	// ErrMissingOutput is returned when a topic manager admits an output the transaction does not have
	ErrMissingOutput = errors.New("missing-output")
	// ErrMissingQuestion is returned when a lookup is performed without a question
	ErrMissingQuestion = errors.New("missing-question")
	// ErrNoDocumentationFound is returned when no documentation is found
	ErrNoDocumentationFound = errors.New("no documentation found")
)

// Engine admits submitted transactions into topics and keeps the registered
// lookup services informed about every admitted, spent or evicted output.
type Engine struct {
	Managers       map[string]TopicManager
	LookupServices map[string]LookupService
	Storage        Storage
}

// NewEngine creates and returns a new Engine instance
func NewEngine(cfg Engine) *Engine {
	if cfg.Managers == nil {
		cfg.Managers = make(map[string]TopicManager)
	}
	if cfg.LookupServices == nil {
		cfg.LookupServices = make(map[string]LookupService)
	}
	return &cfg
}

// Submit runs the transaction through the topic managers named in taggedBEEF and
// applies their decisions. A transaction already applied to a topic yields an
// empty decision for that topic.
func (e *Engine) Submit(ctx context.Context, taggedBEEF overlay.TaggedBEEF) (overlay.Steak, error) {
	topics := set.New(taggedBEEF.Topics...)
	for _, topic := range topics.SortedList() {
		if _, ok := e.Managers[topic]; !ok {
			slog.WithFields(slog.M{"topic": topic}).Error("unknown topic in submit")
			return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
		}
	}

	tx, err := ParseTransaction(taggedBEEF.Beef)
	if err != nil {
		slog.Errorf("failed to parse submitted transaction: %v", err)
		return nil, err
	}
	txid := tx.TxID()

	steak := make(overlay.Steak, topics.Len())
	topicInputs := make(map[string]map[uint32]*Output, topics.Len())
	for _, topic := range topics.SortedList() {
		applied := &overlay.AppliedTransaction{Txid: txid, Topic: topic}
		if exists, err := e.Storage.DoesAppliedTransactionExist(ctx, applied); err != nil {
			return nil, fmt.Errorf("failed to check applied transaction %s for topic %s: %w", txid, topic, err)
		} else if exists {
			slog.WithFields(slog.M{"txid": txid.String(), "topic": topic}).Debug("transaction already applied")
			steak[topic] = &overlay.AdmittanceInstructions{
				OutputsToAdmit: []uint32{},
				CoinsToRetain:  []uint32{},
			}
			continue
		}

		inputs, err := e.findPreviousCoins(ctx, tx, topic)
		if err != nil {
			return nil, err
		}
		topicInputs[topic] = inputs

		previousCoins := make([]uint32, 0, len(inputs))
		for vin := range inputs {
			previousCoins = append(previousCoins, vin)
		}
		slices.Sort(previousCoins)

		admit, err := e.Managers[topic].IdentifyAdmissibleOutputs(ctx, taggedBEEF.Beef, previousCoins)
		if err != nil {
			return nil, fmt.Errorf("topic manager %s failed to identify admissible outputs: %w", topic, err)
		}
		for _, vout := range admit.OutputsToAdmit {
			if int(vout) >= len(tx.Outputs) {
				return nil, fmt.Errorf("%w: topic %s admitted output %d of %d", ErrMissingOutput, topic, vout, len(tx.Outputs))
			}
		}
		steak[topic] = &admit
	}

	for _, topic := range topics.SortedList() {
		inputs, ok := topicInputs[topic]
		if !ok {
			continue
		}
		admit := steak[topic]
		if err := e.applyPreviousCoins(ctx, topic, inputs, admit); err != nil {
			return nil, err
		}

		for _, vout := range admit.OutputsToAdmit {
			out := tx.Outputs[vout]
			output := &Output{
				Outpoint: Outpoint{Txid: *txid, OutputIndex: vout},
				Topic:    topic,
				Script:   out.LockingScript,
				Satoshis: out.Satoshis,
			}
			if err := e.Storage.InsertOutput(ctx, output); err != nil {
				return nil, fmt.Errorf("failed to insert output %s for topic %s: %w", output.Outpoint, topic, err)
			}
			for name, l := range e.LookupServices {
				if err := l.OutputAdded(ctx, output); err != nil {
					logNotificationFailure("output-added", name, &output.Outpoint, topic, err)
				}
			}
		}

		if err := e.Storage.InsertAppliedTransaction(ctx, &overlay.AppliedTransaction{Txid: txid, Topic: topic}); err != nil {
			return nil, fmt.Errorf("failed to insert applied transaction %s for topic %s: %w", txid, topic, err)
		}
	}

	slog.WithFields(slog.M{"txid": txid.String(), "topics": topics.SortedList()}).Info("transaction submitted")
	return steak, nil
}

func (e *Engine) findPreviousCoins(ctx context.Context, tx *transaction.Transaction, topic string) (map[uint32]*Output, error) {
	inputs := make(map[uint32]*Output, len(tx.Inputs))
	for vin, input := range tx.Inputs {
		if input.SourceTXID == nil {
			continue
		}
		outpoint := &Outpoint{Txid: *input.SourceTXID, OutputIndex: input.SourceTxOutIndex}
		output, err := e.Storage.FindOutput(ctx, outpoint, topic, &FALSE)
		if err != nil {
			return nil, fmt.Errorf("failed to find output %s for topic %s: %w", outpoint, topic, err)
		}
		if output != nil {
			inputs[uint32(vin)] = output //nolint:gosec // index bounded by slice length
		}
	}
	return inputs, nil
}

// applyPreviousCoins marks every consumed coin as spent and removes the ones the
// topic manager did not retain, recording them in admit.CoinsRemoved.
func (e *Engine) applyPreviousCoins(ctx context.Context, topic string, inputs map[uint32]*Output, admit *overlay.AdmittanceInstructions) error {
	vins := make([]uint32, 0, len(inputs))
	for vin := range inputs {
		vins = append(vins, vin)
	}
	slices.Sort(vins)

	for _, vin := range vins {
		output := inputs[vin]
		if err := e.Storage.MarkUTXOAsSpent(ctx, &output.Outpoint, topic); err != nil {
			return fmt.Errorf("failed to mark output %s as spent for topic %s: %w", output.Outpoint, topic, err)
		}
		for name, l := range e.LookupServices {
			if err := l.OutputSpent(ctx, &output.Outpoint, topic); err != nil {
				logNotificationFailure("output-spent", name, &output.Outpoint, topic, err)
			}
		}

		if slices.Contains(admit.CoinsToRetain, vin) {
			continue
		}
		if err := e.Storage.DeleteOutput(ctx, &output.Outpoint, topic); err != nil {
			return fmt.Errorf("failed to delete output %s for topic %s: %w", output.Outpoint, topic, err)
		}
		admit.CoinsRemoved = append(admit.CoinsRemoved, vin)
	}
	return nil
}

// EvictOutput removes an admitted output from topic without it being spent and
// notifies the lookup services.
func (e *Engine) EvictOutput(ctx context.Context, outpoint *Outpoint, topic string) error {
	if _, ok := e.Managers[topic]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	if err := e.Storage.DeleteOutput(ctx, outpoint, topic); err != nil {
		return fmt.Errorf("failed to delete output %s for topic %s: %w", outpoint, topic, err)
	}
	for name, l := range e.LookupServices {
		if err := l.OutputDeleted(ctx, outpoint, topic); err != nil {
			logNotificationFailure("output-deleted", name, outpoint, topic, err)
		}
	}
	slog.WithFields(slog.M{"outpoint": outpoint.String(), "topic": topic}).Info("output evicted")
	return nil
}

// Lookup performs a lookup query on the overlay service
func (e *Engine) Lookup(ctx context.Context, question *lookup.LookupQuestion) (*lookup.LookupAnswer, error) {
	if question == nil {
		return nil, ErrMissingQuestion
	}
	l, ok := e.LookupServices[question.Service]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, question.Service)
	}
	answer, err := l.Lookup(ctx, question)
	if err != nil {
		slog.WithFields(slog.M{"service": question.Service, "error": err}).Debug("lookup service failed")
		return nil, err
	}
	return answer, nil
}

// ListTopicManagers returns a list of topic managers and their metadata
func (e *Engine) ListTopicManagers() map[string]*overlay.MetaData {
	result := make(map[string]*overlay.MetaData, len(e.Managers))
	for name, manager := range e.Managers {
		result[name] = manager.GetMetaData()
	}
	return result
}

// ListLookupServiceProviders returns a list of lookup service providers and their metadata
func (e *Engine) ListLookupServiceProviders() map[string]*overlay.MetaData {
	result := make(map[string]*overlay.MetaData, len(e.LookupServices))
	for name, provider := range e.LookupServices {
		result[name] = provider.GetMetaData()
	}
	return result
}

// GetDocumentationForTopicManager returns documentation for a topic manager
func (e *Engine) GetDocumentationForTopicManager(manager string) (string, error) {
	tm, ok := e.Managers[manager]
	if !ok {
		return "", fmt.Errorf("%w: topic manager %s", ErrNoDocumentationFound, manager)
	}
	return tm.GetDocumentation(), nil
}

// GetDocumentationForLookupServiceProvider returns documentation for a lookup service provider
func (e *Engine) GetDocumentationForLookupServiceProvider(provider string) (string, error) {
	l, ok := e.LookupServices[provider]
	if !ok {
		return "", fmt.Errorf("%w: lookup service %s", ErrNoDocumentationFound, provider)
	}
	return l.GetDocumentation(), nil
}

func logNotificationFailure(operation, service string, outpoint *Outpoint, topic string, err error) {
	slog.WithFields(slog.M{
		"operation": operation,
		"service":   service,
		"outpoint":  outpoint.String(),
		"topic":     topic,
	}).Errorf("lookup service notification failed: %v", err)
}
