package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"animal-shelter/internal/domain/animals"
)

const DefaultPageSize = 10

// SortKey es una columna del sort multi-columna de la tabla.
type SortKey struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc"`
}

// ParseSort lee "col:asc,col2:desc" (dirección opcional, asc por defecto).
func ParseSort(s string) ([]SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]SortKey, 0, len(parts))
	for _, p := range parts {
		col, dir, _ := strings.Cut(strings.TrimSpace(p), ":")
		col = strings.TrimSpace(col)
		if col == "" {
			return nil, fmt.Errorf("sort %q: empty column: %w", s, ErrInvalidSelection)
		}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
			out = append(out, SortKey{Column: col})
		case "desc":
			out = append(out, SortKey{Column: col, Desc: true})
		default:
			return nil, fmt.Errorf("sort %q: direction must be asc or desc: %w", s, ErrInvalidSelection)
		}
	}
	return out, nil
}

// searchRows es el filtro nativo de la tabla: substring case-insensitive en cualquier columna.
func searchRows(rows []animals.Record, columns []string, q string) []animals.Record {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return rows
	}

	out := make([]animals.Record, 0)
	for _, r := range rows {
		for _, c := range columns {
			if strings.Contains(strings.ToLower(r.String(c)), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// sortRows ordena in place (estable). Los valores faltantes quedan al final en ambas direcciones.
func sortRows(rows []animals.Record, keys []SortKey) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			av, aok := present(rows[i], k.Column)
			bv, bok := present(rows[j], k.Column)
			switch {
			case !aok && !bok:
				continue
			case !aok:
				return false
			case !bok:
				return true
			}

			c := compareValues(av, bv)
			if c == 0 {
				continue
			}
			if k.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func present(r animals.Record, col string) (any, bool) {
	v, ok := r[col]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// compareValues: números entre sí numéricamente, números antes que texto, texto por orden lexicográfico.
func compareValues(a, b any) int {
	af, aNum := number(a)
	bf, bNum := number(b)
	switch {
	case aNum && bNum:
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v any) (float64, bool) {
	if _, isStr := v.(string); isStr {
		return 0, false
	}
	return animals.ToFloat(v)
}

// paginate recorta la página pedida; page fuera de rango se ajusta al límite.
func paginate(rows []animals.Record, page, size int) (view []animals.Record, current, pages int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages = (len(rows) + size - 1) / size
	if pages == 0 {
		return []animals.Record{}, 0, 0
	}

	current = min(max(page, 0), pages-1)
	start := current * size
	end := min(start+size, len(rows))
	return rows[start:end], current, pages
}
