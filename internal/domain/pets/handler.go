package pets

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, mapper *Mapper) {
	r.Route("/api/v1/pet-tracker", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc, mapper))

		// Estática antes que {id}: chi prioriza rutas fijas.
		pr.Get("/zone-info", getZoneInfoHandler(svc))

		pr.Get("/{id}", getPetHandler(svc))
		pr.Put("/{id}", updatePetHandler(svc, mapper))
		pr.Delete("/{id}", deletePetHandler(svc))
	})
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		dto, err := svc.GetPetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dto)
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.GetAllPets(r.Context(), parsePageRequest(r.URL.Query()))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func getZoneInfoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.CountPetsOutsideZone(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func createPetHandler(svc *Service, mapper *Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto, ok := decodeBody(w, r, mapper)
		if !ok {
			return
		}

		out, err := svc.CreatePet(r.Context(), dto)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

func updatePetHandler(svc *Service, mapper *Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		dto, ok := decodeBody(w, r, mapper)
		if !ok {
			return
		}

		out, err := svc.UpdatePet(r.Context(), id, dto)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		if err := svc.DeletePet(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid pet id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeBody valida el payload polimórfico antes de que corra cualquier
// lógica de servicio. Todo lo que falle acá es 400.
func decodeBody(w http.ResponseWriter, r *http.Request, mapper *Mapper) (PetDto, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return nil, false
	}

	dto, err := mapper.DecodeDto(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return dto, true
}

// parsePageRequest lee page/size/sort estilo ?page=0&size=20&sort=id,desc.
// Solo id es ordenable entre variantes; cualquier otro sort cae a id asc.
func parsePageRequest(q url.Values) PageRequest {
	req := PageRequest{Size: DefaultPageSize}

	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		req.Page = v
	}
	if v, err := strconv.Atoi(q.Get("size")); err == nil && v > 0 {
		req.Size = v
	}

	if sort := q.Get("sort"); sort != "" {
		parts := strings.Split(sort, ",")
		if strings.EqualFold(strings.TrimSpace(parts[0]), "id") &&
			len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
			req.Desc = true
		}
	}

	return req.Normalize()
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrUpdateRejected), errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
