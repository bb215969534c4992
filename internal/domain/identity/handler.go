package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/physiorec/physiorec/internal/platform/auth"
)

type Handler struct {
	svc    *Service
	tokens *auth.TokenManager
}

func NewHandler(svc *Service, tokens *auth.TokenManager) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

// RegisterRoutes wires signup and token issuance onto the public group and
// token refresh onto the authenticated group.
func (h *Handler) RegisterRoutes(public *echo.Group, protected *echo.Group) {
	public.POST("/users/", h.CreateUser)
	public.POST("/auth/token", h.Login)
	protected.POST("/auth/refresh_token", h.RefreshToken)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var in CreateUserInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	u, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ErrUsernameTaken):
			return echo.NewHTTPError(http.StatusConflict, "Username already exists")
		case errors.Is(err, ErrEmailTaken):
			return echo.NewHTTPError(http.StatusConflict, "Email already exists")
		default:
			return err
		}
	}
	return c.JSON(http.StatusCreated, u)
}

// Login implements the OAuth2 password flow used by the previous generation
// of this API: a form body with "username" carrying the email.
func (h *Handler) Login(c echo.Context) error {
	email := c.FormValue("username")
	pass := c.FormValue("password")
	if email == "" || pass == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "username and password are required")
	}

	u, err := h.svc.Authenticate(c.Request().Context(), email, pass)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "Incorrect email or password")
		}
		return err
	}

	token, err := h.tokens.CreateAccessToken(u.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Token{AccessToken: token, TokenType: "bearer"})
}

// RefreshToken issues a fresh token for the already-authenticated caller.
func (h *Handler) RefreshToken(c echo.Context) error {
	email := auth.EmailFromContext(c.Request().Context())

	token, err := h.tokens.CreateAccessToken(email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Token{AccessToken: token, TokenType: "bearer"})
}
