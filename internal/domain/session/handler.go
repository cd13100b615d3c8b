package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/timetrack/internal/domain/user"
	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/httperr"
)

// Handler issues and tears down browser sessions. Login returns the token
// in the body for API clients and sets it as an HttpOnly cookie for
// browsers; both paths go through the same middleware on later requests.
type Handler struct {
	users        *user.Service
	issuer       *auth.TokenIssuer
	cookieSecure bool
}

func NewHandler(users *user.Service, issuer *auth.TokenIssuer, cookieSecure bool) *Handler {
	return &Handler{users: users, issuer: issuer, cookieSecure: cookieSecure}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", h.Me)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string     `json:"access_token"`
	User        *user.User `json:"user"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	u, err := h.users.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == user.ErrBadPassword {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return httperr.From(err, "no account with this email")
	}

	token, err := h.issuer.Issue(u.ID, u.Email, u.FullName(), u.Role, u.PrimarySiteID, u.AssignedSiteIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}

	c.SetCookie(h.sessionCookie(token, h.issuer.TTL()))
	return c.JSON(http.StatusOK, loginResponse{AccessToken: token, User: u})
}

func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Me reflects the authenticated identity back from the token claims, with
// no store round trip. A deleted user keeps a working token until expiry.
func (h *Handler) Me(c echo.Context) error {
	claims := auth.ClaimsFromContext(c.Request().Context())
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	userID, err := claims.UserID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":                userID,
		"email":             claims.Email,
		"name":              claims.Name,
		"role":              claims.Role,
		"primary_site_id":   claims.PrimarySiteID,
		"assigned_site_ids": claims.AssignedSiteIDs,
	})
}

func (h *Handler) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
