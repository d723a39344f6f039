package animals

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Campos conocidos del dataset AAC (Austin Animal Center).
const (
	FieldID          = "_id"
	FieldRecNum      = "rec_num"
	FieldAnimalID    = "animal_id"
	FieldAnimalType  = "animal_type"
	FieldBreed       = "breed"
	FieldColor       = "color"
	FieldDateOfBirth = "date_of_birth"
	FieldDatetime    = "datetime"
	FieldMonthYear   = "monthyear"
	FieldName        = "name"
	FieldOutcomeSub  = "outcome_subtype"
	FieldOutcomeType = "outcome_type"
	FieldSex         = "sex_upon_outcome"
	FieldAge         = "age_upon_outcome"
	FieldAgeWeeks    = "age_upon_outcome_in_weeks"
	FieldLatitude    = "location_lat"
	FieldLongitude   = "location_long"
)

// KnownFields es el orden de columnas del CSV de outcomes del AAC.
var KnownFields = []string{
	FieldRecNum,
	FieldAge,
	FieldAnimalID,
	FieldAnimalType,
	FieldBreed,
	FieldColor,
	FieldDateOfBirth,
	FieldDatetime,
	FieldMonthYear,
	FieldName,
	FieldOutcomeSub,
	FieldOutcomeType,
	FieldSex,
	FieldLatitude,
	FieldLongitude,
	FieldAgeWeeks,
}

// Record es un documento de la colección, sin esquema fijo.
type Record map[string]any

// Filter es un mapa de restricciones al estilo Mongo: campo -> valor o campo -> {"$op": valor}.
type Filter map[string]any

// Changes describe una actualización. Sin operador ($set, $unset, $inc) se trata como $set.
type Changes map[string]any

// UpdateResult es el resultado crudo de un update_many.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// DeleteResult es el resultado crudo de un delete_many.
type DeleteResult struct {
	Deleted int64
}

// String devuelve el campo como texto; "" si no existe o es nil.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

// Float interpreta el campo como número. Acepta los tipos que devuelven los drivers
// (int32/int64 de BSON, float64 de JSON) y strings numéricos.
func (r Record) Float(field string) (float64, bool) {
	v, ok := r[field]
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// Clone hace una copia superficial.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Without devuelve una copia sin los campos indicados.
func (r Record) Without(fields ...string) Record {
	out := r.Clone()
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

// ToFloat convierte valores numéricos heterogéneos a float64.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ToList acepta cualquier slice o array ([]any de JSON, []string armado en Go, bson.A)
// para que $in se interprete igual en todos los backends.
func ToList(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
