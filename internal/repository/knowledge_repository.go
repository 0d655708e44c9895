package repository

import (
	"context"
	"fmt"

	"career-qa/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const knowledgeTable = "knowledge_base"

const createKnowledgeTable = `CREATE TABLE IF NOT EXISTS knowledge_base (
	id         UUID PRIMARY KEY,
	position   INTEGER NOT NULL UNIQUE,
	question   TEXT NOT NULL,
	answer     TEXT NOT NULL,
	keywords   TEXT[] NOT NULL DEFAULT '{}',
	category   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// KnowledgeRepository stores knowledge entries in Postgres. Entries are
// returned in position order so indexes stay stable across restarts.
type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *KnowledgeRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createKnowledgeTable); err != nil {
		return fmt.Errorf("failed to create %s table: %w", knowledgeTable, err)
	}
	return nil
}

// LoadEntries returns every entry ordered by position.
func (r *KnowledgeRepository) LoadEntries(ctx context.Context) ([]models.KnowledgeEntry, error) {
	sql, args, err := listEntriesQuery().ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge base: %w", err)
	}
	defer rows.Close()

	var entries []models.KnowledgeEntry
	for rows.Next() {
		var e models.KnowledgeEntry
		if err := rows.Scan(&e.Question, &e.Answer, &e.Keywords, &e.Category); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Info("Knowledge base loaded from database", zap.Int("entries", len(entries)))
	return entries, nil
}

// ReplaceAll swaps the stored knowledge base for entries in one transaction.
func (r *KnowledgeRepository) ReplaceAll(ctx context.Context, entries []models.KnowledgeEntry) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM "+knowledgeTable); err != nil {
			return fmt.Errorf("failed to clear knowledge base: %w", err)
		}
		for i, e := range entries {
			sql, args, err := insertEntryQuery(i, e).ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("failed to insert entry %d: %w", i, err)
			}
		}
		return nil
	})
}

func listEntriesQuery() squirrel.SelectBuilder {
	return squirrel.Select("question", "answer", "keywords", "category").
		From(knowledgeTable).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func insertEntryQuery(position int, e models.KnowledgeEntry) squirrel.InsertBuilder {
	keywords := e.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return squirrel.Insert(knowledgeTable).
		Columns("id", "position", "question", "answer", "keywords", "category").
		Values(uuid.New(), position, e.Question, e.Answer, keywords, e.Category).
		PlaceholderFormat(squirrel.Dollar)
}
