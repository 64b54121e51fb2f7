// Package docstore is the database-backed Store. Documents live in one table
// with the raw field map in a JSON column; this process is the only writer,
// so change notification after each committed write is authoritative.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tradejournal/internal/models"
	"tradejournal/internal/store"
)

type Store struct {
	db     *gorm.DB
	logger *zap.Logger
	fanout store.Fanout
}

func New(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) Create(ctx context.Context, fields store.Document) (string, error) {
	id := ulid.Make().String()
	row, err := rowFromDocument(id, fields)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", err
	}
	s.broadcast(ctx)
	return id, nil
}

func (s *Store) Update(ctx context.Context, id string, fields store.Document) error {
	if strings.TrimSpace(id) == "" {
		return store.ErrNotFound
	}
	var row models.TradeDocument
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}

	doc, err := documentFromRow(row)
	if err != nil {
		// A corrupt Fields column should not wedge the record forever; start
		// over from the incoming fields.
		if s.logger != nil {
			s.logger.Warn("dropping unreadable document fields", zap.String("id", id), zap.Error(err))
		}
		doc = store.Document{}
	}
	for k, v := range fields {
		doc[k] = v
	}

	updated, err := rowFromDocument(id, doc)
	if err != nil {
		return err
	}
	updated.CreatedAt = row.CreatedAt
	if err := s.db.WithContext(ctx).Save(updated).Error; err != nil {
		return err
	}
	s.broadcast(ctx)
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.TradeDocument{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.broadcast(ctx)
	}
	return nil
}

func (s *Store) GetOnce(ctx context.Context) (store.Snapshot, error) {
	var rows []models.TradeDocument
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	snap := make(store.Snapshot, len(rows))
	for _, row := range rows {
		doc, err := documentFromRow(row)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping unreadable document", zap.String("id", row.ID), zap.Error(err))
			}
			doc = store.Document{}
		}
		snap[row.ID] = doc
	}
	return snap, nil
}

func (s *Store) Subscribe(fn func(store.Snapshot)) (cancel func()) {
	cancel = s.fanout.Subscribe(fn)
	snap, err := s.GetOnce(context.Background())
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("initial snapshot load failed", zap.Error(err))
		}
		snap = store.Snapshot{}
	}
	fn(snap)
	return cancel
}

func (s *Store) broadcast(ctx context.Context) {
	snap, err := s.GetOnce(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("snapshot reload after write failed", zap.Error(err))
		}
		return
	}
	s.fanout.Broadcast(snap)
}

func rowFromDocument(id string, doc store.Document) (*models.TradeDocument, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	row := &models.TradeDocument{
		ID:     id,
		Fields: datatypes.JSON(raw),
	}
	if v, ok := doc["date"].(string); ok {
		row.Date = v
	}
	if v, ok := doc["type"].(string); ok {
		row.Side = v
	}
	if v, ok := doc["strategy"].(string); ok {
		row.Strategy = v
	}
	if v, ok := doc["profitLoss"].(float64); ok {
		row.ProfitLoss = v
	}
	return row, nil
}

func documentFromRow(row models.TradeDocument) (store.Document, error) {
	doc := store.Document{}
	if len(row.Fields) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(row.Fields, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
