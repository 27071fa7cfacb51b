package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// collectionRow holds one serialized collection per row, keeping the
// same named-collection contract as FileStore on an SQLite database.
type collectionRow struct {
	bun.BaseModel `bun:"table:collections"`

	Name      string    `bun:"name,pk"`
	Records   []byte    `bun:"records,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type BunStore struct {
	Bun *bun.DB
}

func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{Bun: db}
}

// Migrate creates the collections table if it does not exist yet.
func Migrate(db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*collectionRow)(nil)).
		IfNotExists().
		Exec(context.Background())
	if err != nil {
		return fmt.Errorf("create collections table: %w", err)
	}
	return nil
}

func (b *BunStore) Read(collection string, out any) error {
	var row collectionRow
	err := b.Bun.NewSelect().
		Model(&row).
		Where("name = ?", collection).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return json.Unmarshal([]byte("[]"), out)
	}
	if err != nil {
		return fmt.Errorf("select collection %q: %w", collection, err)
	}
	if err := json.Unmarshal(row.Records, out); err != nil {
		return fmt.Errorf("decode collection %q: %w", collection, err)
	}
	return nil
}

func (b *BunStore) Write(collection string, records any) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", collection, err)
	}

	row := &collectionRow{
		Name:      collection,
		Records:   raw,
		UpdatedAt: time.Now(),
	}
	_, err = b.Bun.NewInsert().
		Model(row).
		On("CONFLICT (name) DO UPDATE").
		Set("records = EXCLUDED.records").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(context.Background())
	if err != nil {
		return fmt.Errorf("upsert collection %q: %w", collection, err)
	}
	return nil
}
