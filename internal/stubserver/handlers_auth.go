package stubserver

import (
	"net/http"
	"time"

	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/ecofinds/marketplace-client/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Request body is missing or not JSON")
		return
	}

	if err := utils.ValidateStruct(s.validate, req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Email, username, and password are required")
		return
	}

	if _, _, exists := s.data.userByEmail(req.Email); exists {
		writeMsg(w, http.StatusConflict, "Email already exists")
		return
	}

	if _, exists := s.data.userByUsername(req.Username); exists {
		writeMsg(w, http.StatusConflict, "Username already exists")
		return
	}

	user, err := s.data.createUser(req)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, "Registration failed due to a server error")
		return
	}

	s.writeAuthResponse(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Request body is missing or not JSON")
		return
	}

	user, hash, ok := s.data.userByEmail(req.Email)
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		writeMsg(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	s.writeAuthResponse(w, http.StatusOK, user)
}

func (s *Server) writeAuthResponse(w http.ResponseWriter, statusCode int, user models.User) {
	accessToken, err := s.issueToken(user.ID, user.Email, accessTokenTTL)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	refreshToken, err := s.issueToken(user.ID, user.Email, refreshTokenTTL)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeJSON(w, statusCode, models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         &user,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	user, ok := s.data.user(userID)
	if !ok {
		writeMsg(w, http.StatusNotFound, "User not found for token identity")
		return
	}

	accessToken, err := s.issueToken(user.ID, user.Email, accessTokenTTL)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{AccessToken: accessToken})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeMsg(w, http.StatusOK, "Logout successful. Please clear your token client-side.")
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.data.user(userIDFrom(r.Context()))
	if !ok {
		writeMsg(w, http.StatusNotFound, "User not found for token identity")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := s.data.user(userIDFrom(r.Context()))
	if !ok {
		writeMsg(w, http.StatusNotFound, "User not found")
		return
	}

	var patch models.ProfilePatch
	if err := decodeBody(r, &patch); err != nil {
		writeMsg(w, http.StatusBadRequest, "Request body is missing or not JSON")
		return
	}

	if patch.Username != nil {
		username := s.sanitizer.Sanitize(*patch.Username)
		if username == "" {
			writeMsg(w, http.StatusBadRequest, "Username cannot be empty")
			return
		}

		if other, exists := s.data.userByUsername(username); exists && other.ID != user.ID {
			writeMsg(w, http.StatusConflict, "Username already taken")
			return
		}

		user.Username = username
	}

	if patch.ProfileImage != nil {
		user.ProfileImage = *patch.ProfileImage
	}

	s.data.updateUser(user)

	writeJSON(w, http.StatusOK, user)
}
