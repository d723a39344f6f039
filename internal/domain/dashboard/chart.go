package dashboard

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"animal-shelter/internal/domain/animals"
)

const (
	chartTitle      = "Breeds"
	chartHole       = 0.4
	chartLabelWidth = 40
)

type PieSlice struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Count   int     `json:"count"`
}

type PieChart struct {
	Title  string     `json:"title"`
	Hole   float64    `json:"hole"`
	Slices []PieSlice `json:"slices"`
}

// BreedChart calcula el porcentaje de cada raza en las filas visibles.
// nil si no hay filas con raza (la UI no dibuja el gráfico).
func BreedChart(rows []animals.Record) *PieChart {
	counts := map[string]int{}
	total := 0
	for _, r := range rows {
		if _, ok := present(r, animals.FieldBreed); !ok {
			continue
		}
		counts[r.String(animals.FieldBreed)]++
		total++
	}
	if total == 0 {
		return nil
	}

	breeds := make([]string, 0, len(counts))
	for b := range counts {
		breeds = append(breeds, b)
	}
	// Mayor cantidad primero; empate por nombre para que el orden sea estable.
	sort.Slice(breeds, func(i, j int) bool {
		if counts[breeds[i]] != counts[breeds[j]] {
			return counts[breeds[i]] > counts[breeds[j]]
		}
		return breeds[i] < breeds[j]
	})

	slices := make([]PieSlice, 0, len(breeds))
	for _, b := range breeds {
		pct := float64(counts[b]) / float64(total) * 100
		slices = append(slices, PieSlice{
			Label:   fixedWidthLabel(b, chartLabelWidth),
			Percent: math.Round(pct*100) / 100,
			Count:   counts[b],
		})
	}

	return &PieChart{
		Title:  chartTitle,
		Hole:   chartHole,
		Slices: slices,
	}
}

// fixedWidthLabel corta a width runas y completa con espacios a la derecha; con una
// fuente monoespaciada el gráfico no se mueve al cambiar las etiquetas.
func fixedWidthLabel(s string, width int) string {
	if utf8.RuneCountInString(s) > width {
		s = string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}
