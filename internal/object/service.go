// Package object exposes a schemaless document resource: clients store
// arbitrary JSON payloads and read them back by identifier.
package object

import (
	"context"
	"errors"
	"time"

	"backend-tripplanner/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Document struct {
	ID        string         `json:"id"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

var ErrNotFound = errors.New("object not found")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateObject(ctx context.Context, data map[string]any) (Document, error) {
	doc := Document{
		ID:   uuid.NewString(),
		Data: data,
	}
	if doc.Data == nil {
		doc.Data = map[string]any{}
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO objects (id, doc)
		VALUES ($1,$2)
		RETURNING created_at
	`, doc.ID, doc.Data)
	if err := row.Scan(&doc.CreatedAt); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (s *Service) GetObject(ctx context.Context, id string) (Document, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, doc, created_at
		FROM objects WHERE id=$1
	`, id)

	var doc Document
	if err := row.Scan(&doc.ID, &doc.Data, &doc.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}
