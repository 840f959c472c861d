package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/aihara87/LastletterGame/crypto"
)

var (
	ErrMissingTokenStr         = "missing-token"
	ErrExpiredTokenStr         = "expired-token"
	ErrInvalidRequestFormatStr = "bad-request-format"
	ErrInvalidCredentialsStr   = "invalid-credentials"
	ErrUnknownStr              = "unknown-error"
)

type AdminService interface {
	Login(password string, now time.Time) (string, error)
	VerifyToken(token string) error
}

type authHandler struct {
	authService  AdminService
	cookieMaxAge time.Duration
}

func NewAuthHandler(service AdminService, cookieMaxAge time.Duration) *authHandler {
	return &authHandler{authService: service, cookieMaxAge: cookieMaxAge}
}

func (ah *authHandler) RequireAdminMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie("token")
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMissingTokenStr})
			return
		}

		if err := ah.authService.VerifyToken(token); err != nil {
			switch {
			case errors.Is(err, crypto.ErrExpiredToken):
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrExpiredTokenStr})
			case errors.Is(err, crypto.ErrInvalidSigningAlg),
				errors.Is(err, crypto.ErrInvalidTokenSignature),
				errors.Is(err, crypto.ErrCorruptedToken),
				errors.Is(err, ErrIncorrectPassword):
				log.Warn().Str("ip", ctx.ClientIP()).Msg("rejected admin token")
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentialsStr})
			default:
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUnknownStr})
			}
			return
		}

		ctx.Next()
	}
}

func (ah *authHandler) LoginHandler(ctx *gin.Context) {
	var credentials struct {
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&credentials); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	token, err := ah.authService.Login(credentials.Password, time.Now())
	if err != nil {
		if errors.Is(err, ErrIncorrectPassword) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentialsStr})
			return
		}
		log.Error().Err(err).Msg("admin login failed")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUnknownStr})
		return
	}

	ctx.SetCookie("token", token, int(ah.cookieMaxAge.Seconds()), "/", "", true, true)
	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.Status(http.StatusOK)
}

func (ah *authHandler) LogoutHandler(ctx *gin.Context) {
	ctx.SetCookie("token", "", -1, "/", "", true, true)
	ctx.Status(http.StatusOK)
}
