package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"spiceroute-services/internal/auth"
	"spiceroute-services/internal/jsonstore"
	"spiceroute-services/pkg/response"

	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) RolesPermissionsGet(w http.ResponseWriter, r *http.Request) {
	var roles auth.RolesDocument
	if err := h.loadOrDefault(FileRolesPermissions, &roles); err != nil {
		h.Logger.Error("roles load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load roles")
		return
	}
	if roles.Roles == nil {
		roles.Roles = []auth.RolePermissions{}
	}
	response.Success(w, roles)
}

func (h *Handler) RolesPermissionsPut(w http.ResponseWriter, r *http.Request) {
	var roles auth.RolesDocument
	if err := h.decodeBody(r, &roles); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid roles payload")
		return
	}
	for _, role := range roles.Roles {
		if strings.TrimSpace(role.Name) == "" {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Role name is required")
			return
		}
	}

	if err := h.Store.Save(FileRolesPermissions, roles); err != nil {
		h.Logger.Error("roles save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save roles")
		return
	}
	response.Success(w, roles)
}

// SaveCredentials persists the request body as the credentials file. The only
// guard is a top-level array check; the payload is stored verbatim.
func (h *Handler) SaveCredentials(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, h.Config.MaxFileSizeBytes))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Could not read request body")
		return
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Body must be valid JSON")
		return
	}
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Credentials payload must be an array")
		return
	}

	if err := h.Store.Save(FileStaffCredentials, raw); err != nil {
		h.Logger.Error("credentials save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save credentials")
		return
	}
	response.Success(w, map[string]any{"saved": true})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decodeBody(r, &req); err != nil || req.Username == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", auth.UserMessage("auth/invalid-credential"))
		return
	}

	var creds []StaffCredential
	err := h.Store.Load(FileStaffCredentials, &creds)
	if errors.Is(err, jsonstore.ErrNotFound) {
		response.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", auth.UserMessage("auth/user-not-found"))
		return
	}
	if err != nil {
		h.Logger.Error("credentials load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", auth.UserMessage("auth/network-request-failed"))
		return
	}

	var matched *StaffCredential
	for i := range creds {
		if strings.EqualFold(creds[i].Username, req.Username) {
			matched = &creds[i]
			break
		}
	}
	if matched == nil {
		response.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", auth.UserMessage("auth/user-not-found"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(matched.PasswordHash), []byte(req.Password)); err != nil {
		response.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", auth.UserMessage("auth/wrong-password"))
		return
	}

	expiry := time.Duration(h.Config.JWTExpirySeconds) * time.Second
	token, err := auth.IssueAccessToken(matched.Username, auth.StaffRole(matched.Role), matched.Name, h.Config.JWTSecret, expiry)
	if err != nil {
		h.Logger.Error("token issue failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", auth.UserMessage(""))
		return
	}

	response.Success(w, map[string]any{
		"token":    token,
		"username": matched.Username,
		"role":     matched.Role,
		"name":     matched.Name,
	})
}
