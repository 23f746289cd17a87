package handler

import (
    "net/http" // HTTP status codes and primitives
    "time"     // token expiry timestamps

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/worapol/banquet-booking/internal/config" // app configuration
    "github.com/worapol/banquet-booking/internal/middleware"
    "github.com/worapol/banquet-booking/internal/utils" // token issuing and password hashing
)

// AuthHandler implements the admin login.  There is no self-service
// registration: the organising teachers are configured up front via
// ADMIN_ACCOUNTS and everyone else uses the site as a guest.
type AuthHandler struct {
    Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
    return &AuthHandler{Cfg: cfg}
}

// ----- DTOs -----

type loginReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type userPart struct {
    Username    string `json:"username"`
    DisplayName string `json:"displayName"`
    Role        string `json:"role"`
}
type authResp struct {
    User   userPart  `json:"user"`
    Access tokenPart `json:"access"`
}

// Login handles POST /v1/auth/login.  It verifies the credentials against
// the configured admin accounts and issues a short-lived access token.
// Unknown usernames and wrong passwords produce the same 401 so the
// endpoint does not leak which admin accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
    }

    var account *config.AdminAccount
    for i := range h.Cfg.Admins {
        if h.Cfg.Admins[i].Username == req.Username {
            account = &h.Cfg.Admins[i]
            break
        }
    }
    if account == nil || !utils.VerifyPassword(account.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, account.Username, account.DisplayName, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
    }
    return c.JSON(http.StatusOK, authResp{
        User:   userPart{Username: account.Username, DisplayName: account.DisplayName, Role: "ADMIN"},
        Access: tokenPart{Token: access.Token, Expires: access.Exp},
    })
}

// Me handles GET /v1/me.  It echoes back the identity carried by the
// access token so the admin UI can restore a session after reload.
func (h *AuthHandler) Me(c echo.Context) error {
    ident := middleware.IdentityFrom(c)
    if !ident.Privileged {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    username, _ := c.Get("user_id").(string)
    return c.JSON(http.StatusOK, echo.Map{
        "user": userPart{Username: username, DisplayName: ident.DisplayName, Role: "ADMIN"},
    })
}
