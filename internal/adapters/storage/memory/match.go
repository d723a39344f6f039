package memory

import (
	"fmt"
	"reflect"
	"strings"

	"animal-shelter/internal/domain/animals"
)

// matches evalúa un filtro estilo Mongo sobre un documento. Cubre el subconjunto que
// usan el dashboard y la API: igualdad y $eq/$ne/$gt/$gte/$lt/$lte/$in por campo.
func matches(doc animals.Record, filter animals.Filter) (bool, error) {
	for field, cond := range filter {
		if strings.HasPrefix(field, "$") {
			return false, fmt.Errorf("top-level %s: %w", field, animals.ErrUnsupportedOperator)
		}

		got, present := doc[field]

		ops, isOps := operatorMap(cond)
		if !isOps {
			if !present || !equal(got, cond) {
				return false, nil
			}
			continue
		}

		for op, want := range ops {
			ok, err := evalOp(op, got, present, want)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

// validateFilter rechaza operadores desconocidos antes de recorrer documentos,
// así un filtro inválido falla igual aunque ningún documento llegue a evaluarlo.
func validateFilter(filter animals.Filter) error {
	for field, cond := range filter {
		if strings.HasPrefix(field, "$") {
			return fmt.Errorf("top-level %s: %w", field, animals.ErrUnsupportedOperator)
		}
		ops, isOps := operatorMap(cond)
		if !isOps {
			continue
		}
		for op, want := range ops {
			if _, err := evalOp(op, nil, false, want); err != nil {
				return err
			}
		}
	}
	return nil
}

// operatorMap detecta {"$gte": 1, ...}. Un mapa sin claves $ se compara por igualdad.
func operatorMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		if f, isFilter := v.(animals.Filter); isFilter {
			m, ok = map[string]any(f), true
		}
	}
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

func evalOp(op string, got any, present bool, want any) (bool, error) {
	switch op {
	case animals.OpEq:
		return present && equal(got, want), nil
	case animals.OpNe:
		return !present || !equal(got, want), nil
	case animals.OpIn:
		list, ok := animals.ToList(want)
		if !ok {
			return false, fmt.Errorf("$in expects an array: %w", animals.ErrInvalidInput)
		}
		if !present {
			return false, nil
		}
		for _, w := range list {
			if equal(got, w) {
				return true, nil
			}
		}
		return false, nil
	case animals.OpGt, animals.OpGte, animals.OpLt, animals.OpLte:
		if !present {
			return false, nil
		}
		c, ok := compare(got, want)
		if !ok {
			// Mongo no compara tipos distintos en rangos: simplemente no matchea.
			return false, nil
		}
		switch op {
		case animals.OpGt:
			return c > 0, nil
		case animals.OpGte:
			return c >= 0, nil
		case animals.OpLt:
			return c < 0, nil
		default:
			return c <= 0, nil
		}
	default:
		return false, fmt.Errorf("%s: %w", op, animals.ErrUnsupportedOperator)
	}
}

func equal(a, b any) bool {
	af, aNum := animals.ToFloat(a)
	bf, bNum := animals.ToFloat(b)
	_, aStr := a.(string)
	_, bStr := b.(string)
	if aNum && bNum && !aStr && !bStr {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

// compare devuelve -1/0/1; false si los tipos no son comparables entre sí.
func compare(a, b any) (int, bool) {
	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return strings.Compare(as, bs), true
	}
	if aStr || bStr {
		return 0, false
	}

	af, ok1 := animals.ToFloat(a)
	bf, ok2 := animals.ToFloat(b)
	if !ok1 || !ok2 {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

// apply ejecuta $set/$unset/$inc sobre una copia y reporta si cambió algo.
func apply(doc animals.Record, changes animals.Changes) (animals.Record, bool, error) {
	out := doc.Clone()
	changed := false

	for op, arg := range changes {
		fields, ok := operatorArgs(arg)
		if !ok {
			return nil, false, fmt.Errorf("%s expects a document: %w", op, animals.ErrInvalidInput)
		}

		switch op {
		case animals.OpSet:
			for k, v := range fields {
				if cur, exists := out[k]; !exists || !reflect.DeepEqual(cur, v) {
					changed = true
				}
				out[k] = v
			}
		case animals.OpUnset:
			for k := range fields {
				if _, exists := out[k]; exists {
					delete(out, k)
					changed = true
				}
			}
		case animals.OpInc:
			for k, v := range fields {
				delta, ok := animals.ToFloat(v)
				if !ok {
					return nil, false, fmt.Errorf("$inc %s: non-numeric delta: %w", k, animals.ErrInvalidInput)
				}
				cur := 0.0
				if existing, exists := out[k]; exists {
					cur, ok = animals.ToFloat(existing)
					if !ok {
						return nil, false, fmt.Errorf("$inc %s: non-numeric field: %w", k, animals.ErrInvalidInput)
					}
				}
				out[k] = cur + delta
				if delta != 0 {
					changed = true
				}
			}
		default:
			return nil, false, fmt.Errorf("%s: %w", op, animals.ErrUnsupportedOperator)
		}
	}

	return out, changed, nil
}

func operatorArgs(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case animals.Changes:
		return map[string]any(t), true
	case animals.Record:
		return map[string]any(t), true
	default:
		return nil, false
	}
}
