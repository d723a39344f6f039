package dashboard

import (
	"sort"
	"strconv"
	"time"

	"animal-shelter/internal/domain/animals"
)

// Option es una entrada de dropdown.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OptionSet es lo que necesita la UI para re-armar dropdowns y slider.
type OptionSet struct {
	Types       []Option `json:"types"`
	Breeds      []Option `json:"breeds"`
	Genders     []Option `json:"genders"`
	AgeMin      int      `json:"age_min"`
	AgeMax      int      `json:"age_max"`
	PageCurrent int      `json:"page_current"`
}

// Snapshot es la carga completa de la colección al arrancar el dashboard.
type Snapshot struct {
	Records  []animals.Record
	Columns  []string
	Options  OptionSet
	LoadedAt time.Time
}

func buildSnapshot(records []animals.Record, now time.Time) *Snapshot {
	return &Snapshot{
		Records:  records,
		Columns:  columnsOf(records),
		Options:  deriveOptions(records),
		LoadedAt: now,
	}
}

// columnsOf respeta el orden del dataset AAC para los campos conocidos y agrega
// el resto ordenado alfabéticamente.
func columnsOf(records []animals.Record) []string {
	present := map[string]struct{}{}
	for _, r := range records {
		for k := range r {
			if k == animals.FieldID {
				continue
			}
			present[k] = struct{}{}
		}
	}

	cols := make([]string, 0, len(present))
	for _, k := range animals.KnownFields {
		if _, ok := present[k]; ok {
			cols = append(cols, k)
			delete(present, k)
		}
	}

	extra := make([]string, 0, len(present))
	for k := range present {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(cols, extra...)
}

// deriveOptions arma los dropdowns (valores únicos ordenados) y los límites del slider.
func deriveOptions(records []animals.Record) OptionSet {
	set := OptionSet{
		Types:   uniqueOptions(records, animals.FieldAnimalType),
		Breeds:  uniqueOptions(records, animals.FieldBreed),
		Genders: uniqueOptions(records, animals.FieldSex),
	}

	lo, hi, ok := ageExtent(records)
	if !ok {
		return set
	}
	set.AgeMin = max(int(lo), 0)
	set.AgeMax = max(int(hi), set.AgeMin)
	return set
}

func uniqueOptions(records []animals.Record, field string) []Option {
	seen := map[string]struct{}{}
	for _, r := range records {
		v := r.String(field)
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Label: v, Value: v})
	}
	return out
}

func ageExtent(records []animals.Record) (lo, hi float64, ok bool) {
	for _, r := range records {
		age, isNum := r.Float(animals.FieldAgeWeeks)
		if !isNum {
			continue
		}
		if !ok {
			lo, hi, ok = age, age, true
			continue
		}
		lo = min(lo, age)
		hi = max(hi, age)
	}
	return lo, hi, ok
}

// SliderText es la leyenda sobre el slider de edad.
func SliderText(lo, hi int) string {
	return "Age Range: " + strconv.Itoa(lo) + " to " + strconv.Itoa(hi) + " weeks"
}
