package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Amke0501/Private-Notes-App/internal/auth"
	"github.com/Amke0501/Private-Notes-App/internal/store"
)

const minPasswordLen = 8

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func SignupHandler(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Email and password are required")
			return
		}
		if !strings.Contains(req.Email, "@") {
			writeError(w, http.StatusBadRequest, "Invalid email address")
			return
		}
		if len(req.Password) < minPasswordLen {
			writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("failed to hash password", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		user, err := users.CreateUser(r.Context(), req.Email, string(hash))
		if err != nil {
			if errors.Is(err, store.ErrEmailTaken) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			slog.Error("failed to create user", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Signup successful",
			"user":    user,
		})
	}
}

func LoginHandler(users store.UserStore, tokens *auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		user, err := users.UserByEmail(r.Context(), req.Email)
		if err != nil {
			slog.Error("failed to look up user", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		// Same message whether the email is unknown or the password is wrong.
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token, err := tokens.Generate(user.ID, user.Email)
		if err != nil {
			slog.Error("failed to generate token", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.SessionCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(tokens.TTL().Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Login successful",
			"user":    user,
		})
	}
}

func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     auth.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
	}
}

func MeHandler(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
			return
		}

		user, err := users.UserByID(r.Context(), identity.UserID)
		if err != nil {
			slog.Error("failed to look up user", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user == nil {
			// Valid token for an account that no longer exists.
			writeError(w, http.StatusUnauthorized, "invalid token: unknown subject")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	}
}
