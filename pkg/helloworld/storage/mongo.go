package storage

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// RecordsCollection holds one document per indexed message.
	RecordsCollection = "helloWorldRecords"
	// CountersCollection holds the insertion sequence counter.
	CountersCollection = "helloWorldCounters"
)

type mongoRecord struct {
	Txid        string    `bson:"txid"`
	OutputIndex uint32    `bson:"outputIndex"`
	Message     string    `bson:"message"`
	CreatedAt   time.Time `bson:"createdAt"`
	Seq         int64     `bson:"seq"`
}

type counter struct {
	Seq int64 `bson:"seq"`
}

// MongoStorage is a RecordStore backed by MongoDB.
type MongoStorage struct {
	records  *mongo.Collection
	counters *mongo.Collection
	opts     options
}

// NewMongoStorage binds the store to db and ensures its indexes exist.
func NewMongoStorage(ctx context.Context, db *mongo.Database, opts ...Option) (*MongoStorage, error) {
	s := &MongoStorage{
		records:  db.Collection(RecordsCollection),
		counters: db.Collection(CountersCollection),
		opts:     newOptions(opts),
	}
	if _, err := s.records.Indexes().CreateMany(ctx, recordIndexes()); err != nil {
		return nil, fmt.Errorf("failed to create %s indexes: %w", RecordsCollection, err)
	}
	return s, nil
}

func recordIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "txid", Value: 1}, {Key: "outputIndex", Value: 1}},
			Options: mongoopts.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "seq", Value: 1}},
		},
	}
}

func (s *MongoStorage) StoreRecord(ctx context.Context, txid string, outputIndex uint32, message string) error {
	seq, err := s.nextSeq(ctx)
	if err != nil {
		return err
	}
	doc := mongoRecord{
		Txid:        txid,
		OutputIndex: outputIndex,
		Message:     message,
		CreatedAt:   s.opts.now(),
		Seq:         seq,
	}
	_, err = s.records.ReplaceOne(ctx, keyFilter(txid, outputIndex), doc, mongoopts.Replace().SetUpsert(true))
	return err
}

func (s *MongoStorage) nextSeq(ctx context.Context) (int64, error) {
	var c counter
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": RecordsCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		mongoopts.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(mongoopts.After),
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate record sequence: %w", err)
	}
	return c.Seq, nil
}

func (s *MongoStorage) DeleteRecord(ctx context.Context, txid string, outputIndex uint32) error {
	_, err := s.records.DeleteOne(ctx, keyFilter(txid, outputIndex))
	return err
}

func (s *MongoStorage) FindByMessage(ctx context.Context, message string, page Page) ([]MessageRecord, error) {
	return s.find(ctx, messageFilter(message), page)
}

func (s *MongoStorage) FindAll(ctx context.Context, page Page, from, to *time.Time) ([]MessageRecord, error) {
	return s.find(ctx, dateFilter(from, to), page)
}

func (s *MongoStorage) find(ctx context.Context, filter bson.M, page Page) ([]MessageRecord, error) {
	records := []MessageRecord{}
	if page.empty() {
		return records, nil
	}

	cursor, err := s.records.Find(ctx, filter, findOptions(page))
	if err != nil {
		return nil, err
	}
	var docs []mongoRecord
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		records = append(records, MessageRecord{
			Txid:        doc.Txid,
			OutputIndex: doc.OutputIndex,
			Message:     doc.Message,
			CreatedAt:   doc.CreatedAt.UTC(),
		})
	}
	return records, nil
}

func keyFilter(txid string, outputIndex uint32) bson.M {
	return bson.M{"txid": txid, "outputIndex": outputIndex}
}

func messageFilter(message string) bson.M {
	return bson.M{"message": primitive.Regex{Pattern: regexp.QuoteMeta(message), Options: "i"}}
}

func dateFilter(from, to *time.Time) bson.M {
	createdAt := bson.M{}
	if from != nil {
		createdAt["$gte"] = from.UTC()
	}
	if to != nil {
		createdAt["$lte"] = to.UTC()
	}
	if len(createdAt) == 0 {
		return bson.M{}
	}
	return bson.M{"createdAt": createdAt}
}

func findOptions(page Page) *mongoopts.FindOptions {
	direction := -1
	if page.Order == SortAscending {
		direction = 1
	}
	return mongoopts.Find().
		SetSort(bson.D{{Key: "createdAt", Value: direction}, {Key: "seq", Value: 1}}).
		SetSkip(int64(page.skip())).
		SetLimit(int64(page.Limit))
}

var _ RecordStore = (*MongoStorage)(nil)
