package bot

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/aihara87/LastletterGame/game"
)

type WordSource interface {
	WordsByLanguage(ctx context.Context, language string) ([]string, error)
}

type Handler struct {
	source WordSource
}

func NewHandler(source WordSource) *Handler {
	return &Handler{source: source}
}

// FindWordHandler serves the single-player client one bot move. The used
// list travels with the request because the bot keeps no state.
func (h *Handler) FindWordHandler(ctx *gin.Context) {
	language := ctx.Query("language")
	if language == "" {
		language = game.SupportedLanguages[0]
	}
	if !slices.Contains(game.SupportedLanguages, language) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unsupported-language"})
		return
	}

	letter := strings.ToLower(ctx.Query("letter"))
	if len([]rune(letter)) != 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "letter-required"})
		return
	}

	difficulty := Difficulty(ctx.DefaultQuery("difficulty", string(Medium)))
	switch difficulty {
	case Easy, Medium, Hard:
	default:
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-difficulty"})
		return
	}

	used := map[string]bool{}
	if raw := ctx.Query("used"); raw != "" {
		for _, w := range strings.Split(raw, ",") {
			used[game.NormalizeWord(w)] = true
		}
	}

	words, err := h.source.WordsByLanguage(ctx.Request.Context(), language)
	if err != nil {
		log.Error().Err(err).Str("language", language).Msg("bot word lookup failed")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
		return
	}

	word := FindWord(words, used, letter, difficulty)
	if word == "" {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "NO_WORD_FOUND"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"word": word})
}
