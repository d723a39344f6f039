package dashboard

import (
	"html"
	"strconv"
	"strings"

	"animal-shelter/internal/domain/animals"
)

const (
	mapZoom     = 9
	unnamedName = "Unnamed"
)

type Marker struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Tooltip string  `json:"tooltip"` // HTML escapado, Leaflet lo renderiza como markup
	Popup   string  `json:"popup"`
}

type MapView struct {
	Center  [2]float64 `json:"center"`
	Zoom    int        `json:"zoom"`
	Markers []Marker   `json:"markers"`
}

// BuildMap arma los marcadores de las filas visibles, o solo de las seleccionadas si hay
// selección. Filas sin coordenadas se saltean; sin marcadores devuelve nil.
func BuildMap(rows []animals.Record, selected []int) *MapView {
	if len(selected) > 0 {
		picked := make([]animals.Record, 0, len(selected))
		for _, i := range selected {
			if i >= 0 && i < len(rows) {
				picked = append(picked, rows[i])
			}
		}
		rows = picked
	}

	markers := make([]Marker, 0, len(rows))
	var minLat, maxLat, minLon, maxLon float64
	for _, r := range rows {
		lat, okLat := r.Float(animals.FieldLatitude)
		lon, okLon := r.Float(animals.FieldLongitude)
		if !okLat || !okLon {
			continue
		}

		if len(markers) == 0 {
			minLat, maxLat, minLon, maxLon = lat, lat, lon, lon
		} else {
			minLat, maxLat = min(minLat, lat), max(maxLat, lat)
			minLon, maxLon = min(minLon, lon), max(maxLon, lon)
		}

		name := displayName(r)
		markers = append(markers, Marker{
			Lat:     lat,
			Lon:     lon,
			Tooltip: html.EscapeString(name),
			Popup:   popupHTML(r, name),
		})
	}

	if len(markers) == 0 {
		return nil
	}

	return &MapView{
		Center:  [2]float64{0.5 * (maxLat + minLat), 0.5 * (maxLon + minLon)},
		Zoom:    mapZoom,
		Markers: markers,
	}
}

func displayName(r animals.Record) string {
	if n := strings.TrimSpace(r.String(animals.FieldName)); n != "" {
		return n
	}
	return unnamedName
}

func popupHTML(r animals.Record, name string) string {
	age := ""
	if weeks, ok := r.Float(animals.FieldAgeWeeks); ok {
		age = strconv.Itoa(int(weeks))
	}

	var b strings.Builder
	b.WriteString("<body><h4>Name: ")
	b.WriteString(html.EscapeString(name))
	b.WriteString("</h4>Type: ")
	b.WriteString(html.EscapeString(r.String(animals.FieldAnimalType)))
	b.WriteString("<br>Breed: ")
	b.WriteString(html.EscapeString(r.String(animals.FieldBreed)))
	b.WriteString("<br>Age: ")
	b.WriteString(age)
	b.WriteString(" weeks<br>Sex: ")
	b.WriteString(html.EscapeString(r.String(animals.FieldSex)))
	b.WriteString("</body>")
	return b.String()
}
