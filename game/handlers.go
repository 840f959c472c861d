package game

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidRequestFormatStr = "bad-request-format"
	ErrInvalidPlayerNameStr    = "invalid-player-name"
	ErrInvalidLanguageStr      = "invalid-language"
	ErrInvalidTimerStr         = "invalid-timer-duration"
	ErrInvalidItemUseStr       = "invalid-item-use"
	ErrUnknownStr              = "unknown-error"
)

const maxPlayerNameLength = 32

type RoomHandler struct {
	service *Service
}

func NewRoomHandler(service *Service) *RoomHandler {
	return &RoomHandler{service: service}
}

// writeGameError maps service errors onto the boundary contract: stable codes
// for domain-state errors, a generic client error for item-economy misuse,
// and an opaque 500 for everything unexpected.
func writeGameError(ctx *gin.Context, err error) {
	var gerr *GameError
	switch {
	case errors.As(err, &gerr):
		status := http.StatusBadRequest
		if gerr.Code == CodeRoomNotFound || gerr.Code == CodePlayerNotFound {
			status = http.StatusNotFound
		}
		body := gin.H{"error": gerr.Code}
		if gerr.Required != "" {
			body["required"] = gerr.Required
		}
		ctx.AbortWithStatusJSON(status, body)

	case errors.Is(err, ErrNoBuffItems),
		errors.Is(err, ErrNoDebuffItems),
		errors.Is(err, ErrSelfTarget),
		errors.Is(err, ErrTargetNotFound),
		errors.Is(err, ErrUnknownPlayer):
		log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("impossible item request")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidItemUseStr})

	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("room operation failed")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUnknownStr})
	}
}

func validPlayerName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && len(trimmed) <= maxPlayerNameLength
}

func (h *RoomHandler) CreateRoomHandler(ctx *gin.Context) {
	var body struct {
		PlayerName         string `json:"playerName"`
		DictionaryLanguage string `json:"dictionaryLanguage"`
		TimerEnabled       bool   `json:"timerEnabled"`
		TimerDuration      int    `json:"timerDuration"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	if !validPlayerName(body.PlayerName) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidPlayerNameStr})
		return
	}
	if body.DictionaryLanguage == "" {
		body.DictionaryLanguage = SupportedLanguages[0]
	}
	if !slices.Contains(SupportedLanguages, body.DictionaryLanguage) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidLanguageStr})
		return
	}
	if body.TimerDuration < 0 || body.TimerDuration > 600 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidTimerStr})
		return
	}

	view, playerID, err := h.service.CreateRoom(ctx.Request.Context(), strings.TrimSpace(body.PlayerName), body.DictionaryLanguage, body.TimerEnabled, body.TimerDuration)
	if err != nil {
		writeGameError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"room": view, "playerId": playerID})
}

func (h *RoomHandler) ListRoomsHandler(ctx *gin.Context) {
	summaries, err := h.service.ListRooms(ctx.Request.Context())
	if err != nil {
		writeGameError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

func (h *RoomHandler) GetRoomHandler(ctx *gin.Context) {
	view, err := h.service.GetRoom(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		writeGameError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

func (h *RoomHandler) JoinRoomHandler(ctx *gin.Context) {
	var body struct {
		PlayerName string `json:"playerName"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}
	if !validPlayerName(body.PlayerName) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidPlayerNameStr})
		return
	}

	view, playerID, err := h.service.JoinRoom(ctx.Request.Context(), ctx.Param("id"), strings.TrimSpace(body.PlayerName))
	if err != nil {
		writeGameError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"room": view, "playerId": playerID})
}

func (h *RoomHandler) LeaveRoomHandler(ctx *gin.Context) {
	var body struct {
		PlayerID string `json:"playerId"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.PlayerID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	action, err := h.service.LeaveRoom(ctx.Request.Context(), ctx.Param("id"), body.PlayerID)
	if err != nil {
		writeGameError(ctx, err)
		return
	}
	resp := gin.H{"success": true}
	if action != "" {
		resp["action"] = action
	}
	ctx.JSON(http.StatusOK, resp)
}

func (h *RoomHandler) StartGameHandler(ctx *gin.Context) {
	h.playerAction(ctx, h.service.StartGame)
}

func (h *RoomHandler) HeartbeatHandler(ctx *gin.Context) {
	h.playerAction(ctx, h.service.Heartbeat)
}

func (h *RoomHandler) VoteRetryHandler(ctx *gin.Context) {
	h.playerAction(ctx, h.service.VoteRetry)
}

func (h *RoomHandler) UseBuffHandler(ctx *gin.Context) {
	h.playerAction(ctx, h.service.UseBuff)
}

// playerAction handles the operations whose input is just (roomId, playerId).
func (h *RoomHandler) playerAction(ctx *gin.Context, op func(reqCtx context.Context, roomID, playerID string) (*RoomView, error)) {
	var body struct {
		PlayerID string `json:"playerId"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.PlayerID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	view, err := op(ctx.Request.Context(), ctx.Param("id"), body.PlayerID)
	if err != nil {
		writeGameError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

func (h *RoomHandler) PlayWordHandler(ctx *gin.Context) {
	var body struct {
		PlayerID string `json:"playerId"`
		Word     string `json:"word"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.PlayerID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	view, err := h.service.PlayWord(ctx.Request.Context(), ctx.Param("id"), body.PlayerID, body.Word)
	if err != nil {
		writeGameError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

func (h *RoomHandler) UseDebuffHandler(ctx *gin.Context) {
	var body struct {
		PlayerID       string `json:"playerId"`
		TargetPlayerID string `json:"targetPlayerId"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.PlayerID == "" || body.TargetPlayerID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	view, err := h.service.UseDebuff(ctx.Request.Context(), ctx.Param("id"), body.PlayerID, body.TargetPlayerID)
	if err != nil {
		writeGameError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}
