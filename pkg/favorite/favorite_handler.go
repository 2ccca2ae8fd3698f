package favorite

import (
	"encoding/json"
	"errors"
	"net/http"
)

type FavoriteDTO struct {
	Id           int    `json:"id,omitempty"`
	Type         string `json:"type"`
	TargetEntity int    `json:"targetEntity"`
	Value        string `json:"value,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetByType(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	favoriteType := r.URL.Query().Get("type")
	favorites, err := h.service.GetByType(r.Context(), favoriteType)
	if err != nil {
		if errors.Is(err, ErrEmptyType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]FavoriteDTO, 0, len(favorites))
	for _, f := range favorites {
		dtos = append(dtos, favoriteToDTO(f))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) AddAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dtos []FavoriteDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	favorites := make([]Favorite, 0, len(dtos))
	for _, dto := range dtos {
		favorites = append(favorites, dtoToFavorite(dto))
	}

	saved, err := h.service.AddAll(r.Context(), favorites)
	if err != nil {
		if errors.Is(err, ErrEmptyType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result := make([]FavoriteDTO, 0, len(saved))
	for _, f := range saved {
		result = append(result, favoriteToDTO(f))
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	var dtos []FavoriteDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	favorites := make([]Favorite, 0, len(dtos))
	for _, dto := range dtos {
		favorites = append(favorites, dtoToFavorite(dto))
	}

	if err := h.service.DeleteAll(r.Context(), favorites); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func favoriteToDTO(f Favorite) FavoriteDTO {
	return FavoriteDTO{
		Id:           f.Id,
		Type:         f.Type,
		TargetEntity: f.TargetEntity,
		Value:        f.Value,
	}
}

func dtoToFavorite(dto FavoriteDTO) Favorite {
	return Favorite{
		Id:           dto.Id,
		Type:         dto.Type,
		TargetEntity: dto.TargetEntity,
		Value:        dto.Value,
	}
}
