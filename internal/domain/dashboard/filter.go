package dashboard

import (
	"strings"

	"animal-shelter/internal/domain/animals"
)

// Selection son los tres dropdowns del dashboard; "" = sin selección.
type Selection struct {
	Type   string
	Breed  string
	Gender string
}

func (s Selection) IsEmpty() bool {
	return strings.TrimSpace(s.Type) == "" &&
		strings.TrimSpace(s.Breed) == "" &&
		strings.TrimSpace(s.Gender) == ""
}

// AgeRange es el rango inclusivo (en semanas) que se manda al store.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// NormalizeAgeRange convierte los valores del slider en el rango de consulta:
// min nunca negativo y max al menos min+1. El +1 deja entrar edades fraccionarias
// del último paso del slider (52.14 semanas con el slider en 52).
func NormalizeAgeRange(lo, hi int) AgeRange {
	minAge := max(lo, 0)
	return AgeRange{
		Min: minAge,
		Max: max(hi+1, minAge+1),
	}
}

// selectionFields es la lista de filtros opcionales: dropdown -> campo del documento.
var selectionFields = []struct {
	field string
	value func(Selection) string
}{
	{animals.FieldAnimalType, func(s Selection) string { return s.Type }},
	{animals.FieldBreed, func(s Selection) string { return s.Breed }},
	{animals.FieldSex, func(s Selection) string { return s.Gender }},
}

// CategoricalFilter incluye solo los dropdowns con valor. Sin selección devuelve {} (todo).
func CategoricalFilter(sel Selection) animals.Filter {
	f := animals.Filter{}
	for _, sf := range selectionFields {
		if v := sf.value(sel); strings.TrimSpace(v) != "" {
			f[sf.field] = v
		}
	}
	return f
}

// TableFilter es CategoricalFilter más el rango de edad, que siempre va.
func TableFilter(sel Selection, r AgeRange) animals.Filter {
	f := CategoricalFilter(sel)
	f[animals.FieldAgeWeeks] = map[string]any{
		animals.OpGte: r.Min,
		animals.OpLte: r.Max,
	}
	return f
}
