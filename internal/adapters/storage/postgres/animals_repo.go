package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"animal-shelter/internal/domain/animals"

	"github.com/google/uuid"
)

// AnimalsRepo guarda cada registro como un documento JSONB: misma semántica de filtros
// que Mongo para el subconjunto de operadores soportado.
type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Insert(ctx context.Context, rec animals.Record) error {
	id, _ := rec[animals.FieldID].(string)
	if id == "" {
		id = uuid.NewString()
	}

	raw, err := json.Marshal(rec.Without(animals.FieldID))
	if err != nil {
		return fmt.Errorf("postgres: marshal record: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO animals (id, doc) VALUES ($1, $2::jsonb)
	`, id, string(raw))
	return err
}

func (r *AnimalsRepo) Find(ctx context.Context, filter animals.Filter) (animals.Cursor, error) {
	var b sqlBuilder
	where, err := b.where(filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT doc FROM animals
		WHERE `+where+`
		ORDER BY seq ASC
	`, b.args...)
	if err != nil {
		return nil, err
	}
	return &rowsCursor{rows: rows}, nil
}

func (r *AnimalsRepo) UpdateMany(ctx context.Context, filter animals.Filter, changes animals.Changes) (animals.UpdateResult, error) {
	var countB sqlBuilder
	countWhere, err := countB.where(filter)
	if err != nil {
		return animals.UpdateResult{}, err
	}

	var updB sqlBuilder
	expr, err := updB.updateExpr(changes)
	if err != nil {
		return animals.UpdateResult{}, err
	}
	updWhere, err := updB.where(filter)
	if err != nil {
		return animals.UpdateResult{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return animals.UpdateResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var res animals.UpdateResult
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM animals WHERE `+countWhere, countB.args...).Scan(&res.Matched); err != nil {
		return animals.UpdateResult{}, err
	}

	// Solo cuentan como modificados los documentos cuyo contenido cambia (nModified de Mongo).
	out, err := tx.ExecContext(ctx, `
		UPDATE animals
		SET doc = `+expr+`
		WHERE `+updWhere+` AND (`+expr+`) IS DISTINCT FROM doc
	`, updB.args...)
	if err != nil {
		return animals.UpdateResult{}, err
	}
	res.Modified, _ = out.RowsAffected()

	if err := tx.Commit(); err != nil {
		return animals.UpdateResult{}, err
	}
	return res, nil
}

func (r *AnimalsRepo) DeleteMany(ctx context.Context, filter animals.Filter) (animals.DeleteResult, error) {
	var b sqlBuilder
	where, err := b.where(filter)
	if err != nil {
		return animals.DeleteResult{}, err
	}

	out, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE `+where, b.args...)
	if err != nil {
		return animals.DeleteResult{}, err
	}
	n, _ := out.RowsAffected()
	return animals.DeleteResult{Deleted: n}, nil
}

func (r *AnimalsRepo) Close(ctx context.Context) error {
	return r.db.Close()
}

type rowsCursor struct {
	rows *sql.Rows
	rec  animals.Record
	err  error
}

func (c *rowsCursor) Next(ctx context.Context) bool {
	if c.err != nil || !c.rows.Next() {
		c.rec = nil
		return false
	}

	var raw []byte
	if err := c.rows.Scan(&raw); err != nil {
		c.err = err
		return false
	}

	var rec animals.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		c.err = fmt.Errorf("postgres: decode doc: %w", err)
		return false
	}
	c.rec = rec
	return true
}

func (c *rowsCursor) Record() animals.Record { return c.rec }

func (c *rowsCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *rowsCursor) Close(ctx context.Context) error {
	return c.rows.Close()
}
