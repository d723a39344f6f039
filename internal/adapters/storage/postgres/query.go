package postgres

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"animal-shelter/internal/domain/animals"
)

// sqlBuilder traduce filtros/cambios estilo Mongo a SQL sobre la columna JSONB doc.
// Los nombres de campo también van como parámetros: nunca se interpolan en el SQL.
type sqlBuilder struct {
	args []any
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *sqlBuilder) jsonArg(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("postgres: marshal value: %w", err)
	}
	return b.arg(string(raw)) + "::jsonb", nil
}

// where devuelve la condición SQL para filter; un filtro vacío es TRUE.
func (b *sqlBuilder) where(filter animals.Filter) (string, error) {
	if len(filter) == 0 {
		return "TRUE", nil
	}

	fields := sortedKeys(filter)
	clauses := make([]string, 0, len(fields))
	for _, field := range fields {
		if strings.HasPrefix(field, "$") {
			return "", fmt.Errorf("top-level %s: %w", field, animals.ErrUnsupportedOperator)
		}

		cond := filter[field]
		ops, isOps := operatorMap(cond)
		if !isOps {
			c, err := b.eq(field, cond)
			if err != nil {
				return "", err
			}
			clauses = append(clauses, c)
			continue
		}

		for _, op := range sortedKeys(ops) {
			c, err := b.op(field, op, ops[op])
			if err != nil {
				return "", err
			}
			clauses = append(clauses, c)
		}
	}
	return strings.Join(clauses, " AND "), nil
}

func (b *sqlBuilder) eq(field string, v any) (string, error) {
	key := b.arg(field) + "::text"
	val, err := b.jsonArg(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("doc -> %s = %s", key, val), nil
}

func (b *sqlBuilder) op(field, op string, v any) (string, error) {
	switch op {
	case animals.OpEq:
		return b.eq(field, v)
	case animals.OpNe:
		key := b.arg(field) + "::text"
		val, err := b.jsonArg(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(doc -> %s) IS DISTINCT FROM %s", key, val), nil
	case animals.OpIn:
		list, ok := animals.ToList(v)
		if !ok {
			return "", fmt.Errorf("$in expects an array: %w", animals.ErrInvalidInput)
		}
		if len(list) == 0 {
			return "FALSE", nil
		}
		key := b.arg(field) + "::text"
		vals := make([]string, 0, len(list))
		for _, item := range list {
			val, err := b.jsonArg(item)
			if err != nil {
				return "", err
			}
			vals = append(vals, val)
		}
		return fmt.Sprintf("doc -> %s IN (%s)", key, strings.Join(vals, ", ")), nil
	case animals.OpGt, animals.OpGte, animals.OpLt, animals.OpLte:
		return b.rangeOp(field, op, v)
	default:
		return "", fmt.Errorf("%s: %w", op, animals.ErrUnsupportedOperator)
	}
}

var rangeSQL = map[string]string{
	animals.OpGt:  ">",
	animals.OpGte: ">=",
	animals.OpLt:  "<",
	animals.OpLte: "<=",
}

// rangeOp compara solo contra valores del mismo tipo JSON, como hace Mongo.
func (b *sqlBuilder) rangeOp(field, op string, v any) (string, error) {
	cmp := rangeSQL[op]
	key := b.arg(field) + "::text"

	if s, ok := v.(string); ok {
		return fmt.Sprintf("(jsonb_typeof(doc -> %s) = 'string' AND doc ->> %s %s %s)",
			key, key, cmp, b.arg(s)), nil
	}

	f, ok := animals.ToFloat(v)
	if !ok {
		return "", fmt.Errorf("%s on %s expects a number or string: %w", op, field, animals.ErrInvalidInput)
	}
	return fmt.Sprintf("(jsonb_typeof(doc -> %s) = 'number' AND (doc ->> %s)::numeric %s %s::numeric)",
		key, key, cmp, b.arg(f)), nil
}

// updateExpr arma la expresión del nuevo doc aplicando $set, $unset y $inc en ese orden.
func (b *sqlBuilder) updateExpr(changes animals.Changes) (string, error) {
	expr := "doc"

	for _, op := range sortedKeys(changes) {
		if op != animals.OpSet && op != animals.OpUnset && op != animals.OpInc {
			return "", fmt.Errorf("%s: %w", op, animals.ErrUnsupportedOperator)
		}
		if _, ok := changes[op].(map[string]any); !ok {
			return "", fmt.Errorf("%s expects a document: %w", op, animals.ErrInvalidInput)
		}
	}

	if set, ok := changes[animals.OpSet].(map[string]any); ok && len(set) > 0 {
		val, err := b.jsonArg(set)
		if err != nil {
			return "", err
		}
		expr = fmt.Sprintf("(%s || %s)", expr, val)
	}

	if unset, ok := changes[animals.OpUnset].(map[string]any); ok && len(unset) > 0 {
		expr = fmt.Sprintf("(%s - %s::text[])", expr, b.arg(sortedKeys(unset)))
	}

	if inc, ok := changes[animals.OpInc].(map[string]any); ok {
		for _, field := range sortedKeys(inc) {
			delta, ok := animals.ToFloat(inc[field])
			if !ok {
				return "", fmt.Errorf("$inc %s: non-numeric delta: %w", field, animals.ErrInvalidInput)
			}
			key := b.arg(field) + "::text"
			expr = fmt.Sprintf("jsonb_set(%s, ARRAY[%s], to_jsonb(COALESCE((%s ->> %s)::numeric, 0) + %s::numeric))",
				expr, key, expr, key, b.arg(delta))
		}
	}

	return expr, nil
}

func operatorMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil, false
	}
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return nil, false
		}
	}
	return m, true
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
