// internal/storage/postgres.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"uniautomarket/internal/common/config"
	"uniautomarket/internal/common/logger"
	"uniautomarket/internal/models"
)

const (
	catalogSchemaDDL = `
		CREATE TABLE IF NOT EXISTS catalog_documents (
			id         INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	catalogSelect = `SELECT doc FROM catalog_documents WHERE id = 1`

	catalogUpsert = `
		INSERT INTO catalog_documents (id, doc, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
)

// Postgres stores the catalog document in a single-row table and uses
// LISTEN/NOTIFY as the push channel. NOTIFY carries no payload (the
// document can exceed the notify size limit); listeners re-fetch.
type Postgres struct {
	db      *sql.DB
	dsn     string
	channel string
	log     logger.Logger
}

func NewPostgres(cfg config.PostgresConfig, log logger.Logger) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	p := NewPostgresFromDB(db, cfg.Channel, log)
	p.dsn = cfg.GetDSN()
	return p, nil
}

// NewPostgresFromDB wraps an existing handle; used by tests running
// against sqlmock. Subscribe is inert without a DSN.
func NewPostgresFromDB(db *sql.DB, channel string, log logger.Logger) *Postgres {
	return &Postgres{
		db:      db,
		channel: channel,
		log:     log.WithFields(map[string]interface{}{"adapter": "postgres"}),
	}
}

// EnsureSchema creates the document table when it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, catalogSchemaDDL)
	return err
}

func (p *Postgres) FetchAll(ctx context.Context) (models.Tree, error) {
	var raw []byte
	err := p.db.QueryRowContext(ctx, catalogSelect).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return DecodeTree(raw)
}

func (p *Postgres) Persist(ctx context.Context, tree models.Tree) error {
	raw, err := EncodeTree(tree)
	if err != nil {
		return err
	}
	if _, err := p.db.ExecContext(ctx, catalogUpsert, raw); err != nil {
		return err
	}
	if _, err := p.db.ExecContext(ctx, fmt.Sprintf("NOTIFY %s", pq.QuoteIdentifier(p.channel))); err != nil {
		p.log.Warn("notify after persist failed", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (p *Postgres) Subscribe(onChange func(models.Tree)) func() {
	if p.dsn == "" {
		return func() {}
	}

	listener := pq.NewListener(p.dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			p.log.Warn("listener event error", map[string]interface{}{"event": int(ev), "error": err.Error()})
		}
	})
	if err := listener.Listen(p.channel); err != nil {
		p.log.Error("listen failed, push updates disabled", map[string]interface{}{"error": err.Error()})
		_ = listener.Close()
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case n := <-listener.Notify:
				if n == nil {
					continue // reconnect notification
				}
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				tree, err := p.FetchAll(ctx)
				cancel()
				if err != nil {
					p.log.Warn("re-fetch after notify failed", map[string]interface{}{"error": err.Error()})
					continue
				}
				if tree != nil {
					onChange(tree)
				}
			}
		}
	}()

	return func() {
		close(done)
		_ = listener.Close()
	}
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
