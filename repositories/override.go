package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"svc-mute/domain"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const overridePrefix = "override:"

// OverrideRepository persists local overrides in BadgerDB.
// Keys are "override:{uuid}" and values a protobuf timestamp of the expiry.
type OverrideRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewOverrideRepository(db *badger.DB, log *slog.Logger) *OverrideRepository {
	return &OverrideRepository{db: db, log: log}
}

func overrideKey(subject domain.Subject) []byte {
	return []byte(overridePrefix + subject.String())
}

// Save inserts or replaces the entry of the subject.
func (r *OverrideRepository) Save(_ context.Context, entry domain.OverrideEntry) error {
	data, err := proto.Marshal(timestamppb.New(entry.ExpiresAt))
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(overrideKey(entry.Subject), data)
	})
}

// Delete is a no-op for an unknown subject.
func (r *OverrideRepository) Delete(_ context.Context, subject domain.Subject) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(overrideKey(subject))
	})
}

// Load returns every persisted entry, expired ones included.
// Undecodable records are skipped.
func (r *OverrideRepository) Load(ctx context.Context) ([]domain.OverrideEntry, error) {
	var entries []domain.OverrideEntry
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(overridePrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			key := string(item.Key())
			subject, err := domain.ParseSubject(strings.TrimPrefix(key, overridePrefix))
			if err != nil {
				r.log.Warn("Skipping override with invalid key", "key", key)
				continue
			}
			err = item.Value(func(val []byte) error {
				var ts timestamppb.Timestamp
				if err := proto.Unmarshal(val, &ts); err != nil {
					r.log.Warn("Skipping undecodable override", "key", key, "error", err)
					return nil
				}
				entries = append(entries, domain.OverrideEntry{Subject: subject, ExpiresAt: ts.AsTime()})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
