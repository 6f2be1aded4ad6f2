package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iudanet/userhub/internal/models"
	"github.com/iudanet/userhub/internal/search"
	"github.com/iudanet/userhub/internal/server/storage"
	"github.com/iudanet/userhub/pkg/api"
)

const (
	// DefaultPageSize размер страницы каталога по умолчанию
	DefaultPageSize = 15
	// MaxPageSize верхняя граница page_size из query-параметров
	MaxPageSize = 100
)

// ProfileHandler обрабатывает запросы каталога профилей
type ProfileHandler struct {
	logger       *slog.Logger
	profiles     storage.ProfileStorage
	searchFields []string
	pageSize     int
}

// NewProfileHandler создает новый handler каталога профилей.
// searchFields - упорядоченный список полей свободного поиска
// (storage.ProfileSearchFields для SQLite-хранилища).
func NewProfileHandler(logger *slog.Logger, profiles storage.ProfileStorage, searchFields []string, pageSize int) *ProfileHandler {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ProfileHandler{
		logger:       logger,
		profiles:     profiles,
		searchFields: searchFields,
		pageSize:     pageSize,
	}
}

// List обрабатывает GET /user/profile?keyword=&page=&page_size=
// Постраничный каталог профилей с фильтром по свободной строке.
// Профиль самого запрашивающего в выдачу не входит.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	terms := search.Normalize(r.URL.Query().Get("keyword"))

	query, err := search.Build(terms, h.searchFields)
	if err != nil {
		// Пустой список полей - ошибка конфигурации, не пользовательский ввод
		h.logger.ErrorContext(ctx, "search misconfigured", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	page, pageSize := h.pagination(r)
	offset := (page - 1) * pageSize

	profiles, total, err := h.profiles.SearchProfiles(ctx, query, userID, pageSize, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "profile search failed", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	results := make([]api.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		results = append(results, profileResponse(p))
	}

	resp := api.ProfileListResponse{
		Count:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  results,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Create обрабатывает POST /user/profile
// Создание профиля для аутентифицированного пользователя
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Парсим request body
	var req api.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode profile request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	now := time.Now()
	profile := &models.UserProfile{
		ID:                uuid.New().String(),
		UserID:            userID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Caption:           req.Caption,
		About:             req.About,
		ProfilePictureURL: req.ProfilePictureURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := h.profiles.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, storage.ErrProfileAlreadyExists) {
			sendError(h.logger, w, "profile already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create profile", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Перечитываем, чтобы отдать username владельца из join
	created, err := h.profiles.GetProfileByID(ctx, profile.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load created profile", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "profile created",
		slog.String("profile_id", created.ID),
		slog.String("user_id", userID))

	sendJSON(h.logger, w, profileResponse(created), http.StatusCreated)
}

// Get обрабатывает GET /user/profile/{id}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID := chi.URLParam(r, "id")

	profile, err := h.profiles.GetProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			sendError(h.logger, w, "profile not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get profile", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, profileResponse(profile), http.StatusOK)
}

// Update обрабатывает PATCH /user/profile/{id}
// Частичное обновление: nil-поля запроса не трогаются.
// Чужой профиль менять нельзя.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	profileID := chi.URLParam(r, "id")

	profile, err := h.profiles.GetProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			sendError(h.logger, w, "profile not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get profile", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if profile.UserID != userID {
		sendError(h.logger, w, "forbidden", http.StatusForbidden)
		return
	}

	// Парсим request body
	var req api.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode profile update", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Caption != nil {
		profile.Caption = *req.Caption
	}
	if req.About != nil {
		profile.About = *req.About
	}
	if req.ProfilePictureURL != nil {
		profile.ProfilePictureURL = *req.ProfilePictureURL
	}
	profile.UpdatedAt = time.Now()

	if err := h.profiles.UpdateProfile(ctx, profile); err != nil {
		h.logger.ErrorContext(ctx, "failed to update profile", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, profileResponse(profile), http.StatusOK)
}

// pagination извлекает page и page_size из query-параметров
func (h *ProfileHandler) pagination(r *http.Request) (page, pageSize int) {
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}

	pageSize = h.pageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		pageSize = min(v, MaxPageSize)
	}

	return page, pageSize
}

// profileResponse собирает API-представление профиля
func profileResponse(p *models.UserProfile) api.ProfileResponse {
	return api.ProfileResponse{
		ID:                p.ID,
		User:              api.ProfileUser{ID: p.UserID, Username: p.Username},
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Caption:           p.Caption,
		About:             p.About,
		ProfilePictureURL: p.ProfilePictureURL,
	}
}
