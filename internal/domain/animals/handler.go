package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"animal-shelter/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes expone el DAO por HTTP. Las escrituras exigen un operador autenticado.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Post("/search", searchAnimalsHandler(svc))
		ar.Patch("/", updateAnimalsHandler(svc))
		ar.Delete("/", deleteAnimalsHandler(svc))
	})
}

type createAnimalResponse struct {
	OK bool `json:"ok"`
}

// updateAnimalsRequest: filter vacío ({}) actualiza todo; changes sin operador se aplica como $set.
type updateAnimalsRequest struct {
	Filter  map[string]any `json:"filter"`
	Changes map[string]any `json:"changes"`
}

// createAnimalHandler godoc
// @Summary Crear registro de animal
// @Description Inserta un documento en la colección. Devuelve ok=false si el document store rechazó la inserción (queda logueado). Requiere operador: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de operador"
// @Param Authorization header string false "Bearer token"
// @Param payload body object true "Documento del animal (mapa campo -> valor, no vacío)"
// @Success 201 {object} createAnimalResponse
// @Success 200 {object} createAnimalResponse "ok=false: el store rechazó la inserción"
// @Failure 400 {string} string "invalid json / documento vacío"
// @Failure 401 {string} string "unauthorized"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOperator(w, r) {
			return
		}

		var rec Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ok, err := svc.Create(r.Context(), rec)
		if err != nil {
			writeError(w, err)
			return
		}

		status := http.StatusCreated
		if !ok {
			status = http.StatusOK
		}
		writeJSON(w, status, createAnimalResponse{OK: ok})
	}
}

// searchAnimalsHandler godoc
// @Summary Buscar registros
// @Description Devuelve los documentos que cumplen el filtro (sintaxis Mongo: igualdad, $gte, $lte, $gt, $lt, $ne, $in). Un filtro vacío `{}` devuelve toda la colección. El campo interno `_id` se omite.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body object true "Filtro"
// @Success 200 {array} object
// @Failure 400 {string} string "invalid json / filtro inválido"
// @Failure 500 {string} string "internal error"
// @Router /animals/search [post]
func searchAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter Filter
		if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		items, err := svc.ReadAll(r.Context(), filter)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

// updateAnimalsHandler godoc
// @Summary Actualizar registros
// @Description Aplica `changes` a todos los documentos que cumplen `filter` y devuelve el resultado crudo del store (`n`, `nModified`, `ok`, `updatedExisting`). Requiere operador.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de operador"
// @Param Authorization header string false "Bearer token"
// @Param payload body updateAnimalsRequest true "Filtro y cambios"
// @Success 200 {object} object
// @Failure 400 {string} string "invalid json / parámetros inválidos / operador no soportado"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /animals [patch]
func updateAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOperator(w, r) {
			return
		}

		var req updateAnimalsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		raw, err := svc.Update(r.Context(), Filter(req.Filter), Changes(req.Changes))
		if err != nil {
			writeError(w, err)
			return
		}

		writeRawJSON(w, http.StatusOK, raw)
	}
}

// deleteAnimalsHandler godoc
// @Summary Borrar registros
// @Description Borra todos los documentos que cumplen el filtro (no vacío) y devuelve el resultado crudo del store (`n`, `ok`). Requiere operador.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de operador"
// @Param Authorization header string false "Bearer token"
// @Param payload body object true "Filtro"
// @Success 200 {object} object
// @Failure 400 {string} string "invalid json / filtro vacío"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /animals [delete]
func deleteAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOperator(w, r) {
			return
		}

		var filter Filter
		if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		raw, err := svc.Delete(r.Context(), filter)
		if err != nil {
			writeError(w, err)
			return
		}

		writeRawJSON(w, http.StatusOK, raw)
	}
}

func requireOperator(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnsupportedOperator):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeRawJSON(w http.ResponseWriter, status int, raw string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(raw))
}

// writeJSON está duplicado en los handlers de cada módulo (animals/dashboard),
// igual que en el resto del repo: todavía no vale la pena un paquete común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
