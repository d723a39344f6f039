package animals

import (
	"context"
	"fmt"
	"strings"
)

// Repository es el puerto hacia el document store (Mongo, Postgres JSONB o memoria).
type Repository interface {
	Insert(ctx context.Context, rec Record) error
	Find(ctx context.Context, filter Filter) (Cursor, error)
	UpdateMany(ctx context.Context, filter Filter, changes Changes) (UpdateResult, error)
	DeleteMany(ctx context.Context, filter Filter) (DeleteResult, error)
	Close(ctx context.Context) error
}

// Cursor es una secuencia perezosa de registros, con la misma forma que *mongo.Cursor.
type Cursor interface {
	Next(ctx context.Context) bool
	Record() Record
	Err() error
	Close(ctx context.Context) error
}

// Operadores de actualización soportados por todos los backends.
const (
	OpSet   = "$set"
	OpUnset = "$unset"
	OpInc   = "$inc"
)

// Operadores de consulta soportados por todos los backends.
const (
	OpEq  = "$eq"
	OpNe  = "$ne"
	OpGt  = "$gt"
	OpGte = "$gte"
	OpLt  = "$lt"
	OpLte = "$lte"
	OpIn  = "$in"
)

var (
	queryOps  = map[string]bool{OpEq: true, OpNe: true, OpGt: true, OpGte: true, OpLt: true, OpLte: true, OpIn: true}
	updateOps = map[string]bool{OpSet: true, OpUnset: true, OpInc: true}
)

// CheckFilter rechaza operadores fuera del subconjunto soportado, para que todos los
// backends acepten exactamente los mismos filtros (Mongo aceptaría $where o $regex).
func CheckFilter(f Filter) error {
	for field, cond := range f {
		if strings.HasPrefix(field, "$") {
			return fmt.Errorf("top-level %s: %w", field, ErrUnsupportedOperator)
		}
		m, ok := cond.(map[string]any)
		if !ok {
			continue
		}
		for op := range m {
			if strings.HasPrefix(op, "$") && !queryOps[op] {
				return fmt.Errorf("%s on %s: %w", op, field, ErrUnsupportedOperator)
			}
		}
	}
	return nil
}

// CheckChanges valida los operadores de actualización (ya normalizados).
func CheckChanges(c Changes) error {
	for op, args := range c {
		if !updateOps[op] {
			return fmt.Errorf("%s: %w", op, ErrUnsupportedOperator)
		}
		if _, ok := args.(map[string]any); !ok {
			return fmt.Errorf("%s expects a document: %w", op, ErrInvalidInput)
		}
	}
	return nil
}

// NormalizeChanges envuelve cambios "planos" en $set.
func NormalizeChanges(c Changes) Changes {
	for k := range c {
		if strings.HasPrefix(k, "$") {
			return c
		}
	}
	return Changes{OpSet: map[string]any(c)}
}

// Collect drena el cursor y lo cierra.
func Collect(ctx context.Context, cur Cursor) ([]Record, error) {
	defer cur.Close(ctx)

	out := make([]Record, 0)
	for cur.Next(ctx) {
		out = append(out, cur.Record())
	}
	return out, cur.Err()
}

// SliceCursor adapta un slice ya materializado a Cursor (memoria y tests).
type SliceCursor struct {
	items []Record
	pos   int
	cur   Record
	err   error
}

func NewSliceCursor(items []Record) *SliceCursor {
	return &SliceCursor{items: items}
}

func (c *SliceCursor) Next(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		c.err = err
		c.cur = nil
		return false
	}
	if c.pos >= len(c.items) {
		c.cur = nil
		return false
	}
	c.cur = c.items[c.pos]
	c.pos++
	return true
}

func (c *SliceCursor) Record() Record { return c.cur }

func (c *SliceCursor) Err() error { return c.err }

func (c *SliceCursor) Close(ctx context.Context) error {
	c.items = nil
	c.cur = nil
	return nil
}
