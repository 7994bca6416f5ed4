package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur-trivia/internal/config"
    "github.com/iliyamo/fyyur-trivia/internal/middleware"
    "github.com/iliyamo/fyyur-trivia/internal/utils"
)

// AuthHandler issues admin tokens for the guarded DELETE routes.
type AuthHandler struct {
    Cfg config.AuthConfig
}

func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
    return &AuthHandler{Cfg: cfg}
}

type tokenReq struct {
    Username string `json:"username" form:"username" validate:"required"`
    Password string `json:"password" form:"password" validate:"required"`
}

type tokenResp struct {
    AccessToken string    `json:"access_token"`
    TokenType   string    `json:"token_type"`
    ExpiresAt   time.Time `json:"expires_at"`
}

// Token handles POST /auth/token.  With auth disabled the route does not
// exist as far as clients can tell.
func (h *AuthHandler) Token(c echo.Context) error {
    middleware.MarkReadOnly(c)
    if !h.Cfg.Enabled {
        return echo.ErrNotFound
    }
    var req tokenReq
    if err := c.Bind(&req); err != nil {
        return echo.ErrBadRequest
    }
    req.Username = strings.TrimSpace(req.Username)
    if err := c.Validate(&req); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "username/password required")
    }
    if req.Username != h.Cfg.AdminUser || !utils.VerifyPassword(h.Cfg.AdminPasswordHash, req.Password) {
        return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, req.Username, "admin", h.Cfg.AccessTTLMin)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, tokenResp{
        AccessToken: access.Token,
        TokenType:   "Bearer",
        ExpiresAt:   access.Exp,
    })
}
