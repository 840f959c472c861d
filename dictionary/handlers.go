package dictionary

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidRequestFormatStr = "bad-request-format"
	ErrWordRequiredStr         = "word-required"
	ErrBadLanguageStr          = "unsupported-language"
	ErrWordExistsStr           = "word-already-exists"
	ErrWordNotFoundStr         = "word-not-found"
	ErrUnknownStr              = "unknown-error"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyWord):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrWordRequiredStr})
	case errors.Is(err, ErrBadLanguage):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrBadLanguageStr})
	case errors.Is(err, ErrDuplicateWord):
		ctx.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": ErrWordExistsStr})
	case errors.Is(err, ErrWordNotFound):
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": ErrWordNotFoundStr})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("dictionary operation failed")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUnknownStr})
	}
}

func (h *Handler) ListHandler(ctx *gin.Context) {
	words, err := h.service.List(ctx.Request.Context(), ctx.Query("language"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, words)
}

func (h *Handler) AddHandler(ctx *gin.Context) {
	var body struct {
		Word     string `json:"word"`
		Category string `json:"category"`
		Language string `json:"language"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	word, err := h.service.Add(ctx.Request.Context(), body.Word, body.Category, body.Language)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, word)
}

func (h *Handler) UpdateHandler(ctx *gin.Context) {
	var body struct {
		Word     string `json:"word"`
		Category string `json:"category"`
		Language string `json:"language"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	if err := h.service.Update(ctx.Request.Context(), ctx.Param("id"), body.Word, body.Category, body.Language); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteHandler(ctx *gin.Context) {
	if err := h.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ImportHandler(ctx *gin.Context) {
	var entries []ImportEntry
	if err := ctx.ShouldBindJSON(&entries); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	imported, skipped, err := h.service.Import(ctx.Request.Context(), entries)
	if err != nil {
		log.Error().Err(err).Int("imported", imported).Msg("bulk import aborted")
		writeError(ctx, err)
		return
	}

	log.Info().Int("imported", imported).Int("skipped", skipped).Msg("dictionary import finished")
	ctx.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
}
