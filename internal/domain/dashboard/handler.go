package dashboard

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"animal-shelter/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const maxPageSize = 200

//go:embed web
var webFS embed.FS

var pageTmpl = template.Must(template.ParseFS(webFS, "web/index.html.tmpl"))

// pageData es lo que necesita el template para el primer render (antes de cualquier fetch).
type pageData struct {
	Title      string
	Options    OptionSet
	SliderText string
	PageSize   int
	Columns    []string
}

// RegisterRoutes monta la página del dashboard, sus assets y la API que consume el JS.
func RegisterRoutes(r chi.Router, svc *Service, title string) {
	static, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}

	r.Get("/", indexHandler(svc, title))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/options", optionsHandler(svc))
		ar.Get("/table", tableHandler(svc))
		ar.Post("/snapshot/refresh", refreshHandler(svc))
	})
}

func indexHandler(svc *Service, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap, err := svc.Snapshot()
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = pageTmpl.Execute(w, pageData{
			Title:      title,
			Options:    snap.Options,
			SliderText: SliderText(snap.Options.AgeMin, snap.Options.AgeMax),
			PageSize:   svc.PageSize(),
			Columns:    snap.Columns,
		})
	}
}

// optionsHandler godoc
// @Summary Opciones de filtros
// @Description Recalcula los dropdowns (tipo, raza, sexo) y los límites del slider de edad a partir de la selección categórica. Sin selección devuelve las opciones del snapshot. `page_current` siempre vuelve en 0.
// @Tags dashboard
// @Produce json
// @Param type query string false "animal_type"
// @Param breed query string false "breed"
// @Param gender query string false "sex_upon_outcome"
// @Success 200 {object} OptionSet
// @Failure 503 {string} string "snapshot not loaded"
// @Failure 500 {string} string "internal error"
// @Router /api/options [get]
func optionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, err := svc.Options(r.Context(), selectionFromQuery(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, set)
	}
}

// tableHandler godoc
// @Summary Página de la tabla
// @Description Consulta el store con la selección y el rango de edad, aplica búsqueda, sort y paginado, y devuelve filas, gráfico de razas y mapa de la página visible.
// @Tags dashboard
// @Produce json
// @Param type query string false "animal_type"
// @Param breed query string false "breed"
// @Param gender query string false "sex_upon_outcome"
// @Param age_min query int false "Valor inferior del slider (semanas)"
// @Param age_max query int false "Valor superior del slider (semanas)"
// @Param page query int false "Página (base 0)"
// @Param page_size query int false "Filas por página (máx 200)"
// @Param sort query string false "col:asc,col2:desc"
// @Param q query string false "Búsqueda en cualquier columna"
// @Param selected query string false "Índices seleccionados dentro de la página, separados por coma"
// @Success 200 {object} TablePage
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 503 {string} string "snapshot not loaded"
// @Failure 500 {string} string "internal error"
// @Router /api/table [get]
func tableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := tableQueryFromRequest(r)
		if err != nil {
			writeError(w, err)
			return
		}

		page, err := svc.Table(r.Context(), q)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

type refreshResponse struct {
	Records int `json:"records"`
}

// refreshHandler godoc
// @Summary Recargar snapshot
// @Description Vuelve a leer la colección completa y reemplaza el snapshot (opciones iniciales y columnas). Requiere operador.
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de operador"
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} refreshResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /api/snapshot/refresh [post]
func refreshHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Load(r.Context()); err != nil {
			writeError(w, err)
			return
		}

		snap, err := svc.Snapshot()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, refreshResponse{Records: len(snap.Records)})
	}
}

func selectionFromQuery(r *http.Request) Selection {
	q := r.URL.Query()
	return Selection{
		Type:   q.Get("type"),
		Breed:  q.Get("breed"),
		Gender: q.Get("gender"),
	}
}

func tableQueryFromRequest(r *http.Request) (TableQuery, error) {
	q := r.URL.Query()
	out := TableQuery{
		Selection: selectionFromQuery(r),
		Search:    q.Get("q"),
	}

	var err error
	if out.AgeLow, err = optionalInt(q.Get("age_min"), "age_min"); err != nil {
		return TableQuery{}, err
	}
	if out.AgeHigh, err = optionalInt(q.Get("age_max"), "age_max"); err != nil {
		return TableQuery{}, err
	}

	if v, err := optionalInt(q.Get("page"), "page"); err != nil {
		return TableQuery{}, err
	} else if v != nil {
		out.Page = *v
	}

	if v, err := optionalInt(q.Get("page_size"), "page_size"); err != nil {
		return TableQuery{}, err
	} else if v != nil {
		if *v < 1 || *v > maxPageSize {
			return TableQuery{}, fmt.Errorf("page_size must be between 1 and %d: %w", maxPageSize, ErrInvalidSelection)
		}
		out.PageSize = *v
	}

	if out.Sort, err = ParseSort(q.Get("sort")); err != nil {
		return TableQuery{}, err
	}

	if raw := strings.TrimSpace(q.Get("selected")); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			i, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return TableQuery{}, fmt.Errorf("selected must be a list of row indexes: %w", ErrInvalidSelection)
			}
			out.Selected = append(out.Selected, i)
		}
	}

	return out, nil
}

func optionalInt(raw, name string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer: %w", name, ErrInvalidSelection)
	}
	return &v, nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidSelection):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrSnapshotNotLoaded):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
