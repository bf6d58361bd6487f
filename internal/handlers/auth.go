package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/marewang/final-bnn/internal/auth"
	"github.com/marewang/final-bnn/internal/services"
	"github.com/marewang/final-bnn/internal/store"
	"github.com/marewang/final-bnn/types"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AuthHandler provides session-cookie authentication endpoints.
type AuthHandler struct {
	userService *services.UserService
	signer      *auth.Signer
	hasher      auth.Hasher
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, signer *auth.Signer, hasher auth.Hasher) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		signer:      signer,
		hasher:      hasher,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, signer *auth.Signer, hasher auth.Hasher) {
	handler := NewAuthHandler(userService, signer, hasher)

	r.Post("/register-first", handler.RegisterFirst)
	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/logout", handler.Logout)
	r.With(RequireSession(signer)).Get("/me", handler.Me)
}

// RequireSession verifies the session cookie and injects the principal
// into the request context. Missing, malformed, tampered, and expired
// tokens are all the same condition: no session.
func RequireSession(signer *auth.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			principal, ok := signer.Verify(cookie.Value)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), contextPrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RegisterFirst creates the bootstrap admin account. It only works
// while the users table is empty; afterwards it always refuses.
func (h *AuthHandler) RegisterFirst(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRegisterRequest(w, r)
	if !ok {
		return
	}

	total, err := h.userService.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check accounts")
		return
	}
	if total > 0 {
		writeError(w, http.StatusBadRequest, "accounts already exist; use /auth/register")
		return
	}

	user, status, errMsg := h.createUser(r.Context(), req, types.RoleAdmin)
	if errMsg != "" {
		writeError(w, status, errMsg)
		return
	}
	writeJSON(w, http.StatusCreated, UserResponse{User: user})
}

// Register creates an account. The first account ever registered is
// promoted to admin and needs no session; every later registration
// requires a session whose current database role is admin.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRegisterRequest(w, r)
	if !ok {
		return
	}

	total, err := h.userService.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check accounts")
		return
	}

	role := types.RoleUser
	if total == 0 {
		if req.Role != types.RoleUser {
			role = types.RoleAdmin
		}
	} else {
		principal, ok := h.sessionPrincipal(r)
		if !ok {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		// Trust the stored role over the token's claim.
		me, err := h.userService.GetByID(r.Context(), principal.UID)
		if err != nil {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		if me.Role != types.RoleAdmin {
			writeError(w, http.StatusForbidden, "only admins can register accounts")
			return
		}
		if req.Role == types.RoleAdmin {
			role = types.RoleAdmin
		}
	}

	user, status, errMsg := h.createUser(r.Context(), req, role)
	if errMsg != "" {
		writeError(w, status, errMsg)
		return
	}
	writeJSON(w, http.StatusCreated, UserResponse{User: user})
}

// Login verifies credentials and issues the session cookie. Unknown
// email and wrong password are indistinguishable in the response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.userService.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.signer.Issue(auth.Principal{
		UID:   user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	auth.SetSessionCookie(w, token, h.signer.TTL())
	writeJSON(w, http.StatusOK, UserResponse{User: user})
}

// Logout clears the session cookie. Already-issued copies of the token
// remain valid until they expire; there is no server-side revocation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the current account, re-read from the database.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userService.GetByID(r.Context(), principal.UID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load account")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: user})
}

func (h *AuthHandler) sessionPrincipal(r *http.Request) (auth.Principal, bool) {
	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return auth.Principal{}, false
	}
	return h.signer.Verify(cookie.Value)
}

func (h *AuthHandler) createUser(ctx context.Context, req RegisterRequest, role string) (types.User, int, string) {
	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		return types.User{}, http.StatusInternalServerError, "failed to create account"
	}

	user, err := h.userService.Create(ctx, types.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return types.User{}, http.StatusConflict, "email already registered"
		}
		return types.User{}, http.StatusInternalServerError, "failed to create account"
	}
	return user, 0, ""
}

func decodeRegisterRequest(w http.ResponseWriter, r *http.Request) (RegisterRequest, bool) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return RegisterRequest{}, false
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return RegisterRequest{}, false
	}
	if !emailPattern.MatchString(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return RegisterRequest{}, false
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return RegisterRequest{}, false
	}
	return req, true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	User types.User `json:"user"`
}
