package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tsutsun/magicaltsutsunlist/internal/config"
	"github.com/tsutsun/magicaltsutsunlist/internal/queue"
	"github.com/tsutsun/magicaltsutsunlist/internal/repository"
	"github.com/tsutsun/magicaltsutsunlist/internal/utils"
)

// UserStore is the slice of the user repository the auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, username, email, password, role string, cost int) (uint64, error)
	GetByLogin(ctx context.Context, login string) (repository.User, error)
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// ResetStore persists single-use password-reset token hashes.
type ResetStore interface {
	Store(ctx context.Context, email, tokenHash string, exp time.Time) error
	Consume(ctx context.Context, tokenHash string) error
}

// PublishFunc sends a password-reset event to the mail queue.
type PublishFunc func(ctx context.Context, ev queue.PasswordResetEvent) error

// AuthHandler bundles dependencies for the /user endpoints.
type AuthHandler struct {
	Cfg     config.Config
	Users   UserStore
	Resets  ResetStore
	Publish PublishFunc
}

func NewAuthHandler(cfg config.Config, users UserStore, resets ResetStore, publish PublishFunc) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Resets: resets, Publish: publish}
}

// ----- DTOs -----

type signupReq struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Pass     string `json:"pass" validate:"required,min=8"`
	Role     string `json:"role"`
}

type loginReq struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updatePassReq struct {
	Email string `json:"email" validate:"required,email"`
}

type confirmPassReq struct {
	Pass string `json:"pass" validate:"required,min=8"`
}

type signupUserPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Signup registers a new account.  The role field is accepted but anything
// other than the default is ignored; admin accounts are created out of band.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Pass, repository.RoleDefault, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrUserExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "the user already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error registering the user"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "new user registered successfully",
		"user":    signupUserPart{ID: uid, Username: req.Username, Email: req.Email, Role: repository.RoleDefault},
	})
}

// Login verifies credentials by username or email and returns a signed
// access token.  The 202 status and the "Bearer "-prefixed token mirror
// what the frontend already consumes.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByLogin(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "the user does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username and/or password"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusAccepted, echo.Map{
		"message": "user logged in successfully",
		"token":   "Bearer " + access.Token,
	})
}

// Role echoes the role claim of the authenticated caller.
func (h *AuthHandler) Role(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"role": c.Get("role")})
}

// UpdatePass starts a password reset: it issues a short-lived token for
// the account email, stores its hash for single-use validation and queues
// the reset mail.  Unknown emails are reported as 404.
func (h *AuthHandler) UpdatePass(c echo.Context) error {
	var req updatePassReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	token, exp, err := utils.NewResetToken(h.Cfg.JWTSecret, email, h.Cfg.ResetTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	if err := h.Resets.Store(ctx, email, utils.HashResetRaw(token), exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save token failed"})
	}

	ev := queue.PasswordResetEvent{
		Email:       email,
		Username:    u.Username,
		ResetLink:   strings.TrimRight(h.Cfg.ResetBaseURL, "/") + "/reset-password/" + token,
		ValidMins:   h.Cfg.ResetTTLMin,
		RequestedAt: time.Now().UTC(),
	}
	if err := h.Publish(ctx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "queue reset mail failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "email sent with password reset instructions"})
}

// ConfirmPass completes a reset: the :token param must verify, must not
// have been consumed before, and the carried email selects the account
// whose password is replaced.
func (h *AuthHandler) ConfirmPass(c echo.Context) error {
	raw := c.Param("token")

	var req confirmPassReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	email, err := utils.ParseResetToken(h.Cfg.JWTSecret, raw)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Resets.Consume(ctx, utils.HashResetRaw(raw)); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "consume token failed"})
	}

	hash, err := utils.HashPassword(req.Pass, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	if err := h.Users.UpdatePassword(ctx, email, hash); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "password updated successfully"})
}
