package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"spiceroute-services/internal/auth"
	"spiceroute-services/internal/jsonstore"
)

type contextKey string

const authContextKey contextKey = "authContext"

type AuthContext struct {
	Username string
	Role     auth.StaffRole
	Name     string
}

func WithAuthContext(ctx context.Context, authCtx *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, authCtx)
}

func GetAuthContext(ctx context.Context) (*AuthContext, bool) {
	value := ctx.Value(authContextKey)
	if value == nil {
		return nil, false
	}
	ac, ok := value.(*AuthContext)
	return ac, ok
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "UNAUTHORIZED",
		"message": message,
	})
}

const rolesFile = "roles-permissions.json"

// StaffAuth verifies the bearer token and, for non-admin roles, checks the
// permission mapped to the requested route against the roles-permissions
// document. Missing roles document means only admins get through guarded
// routes.
func StaffAuth(store *jsonstore.Store, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ParseBearerToken(r.Header.Get("Authorization"))
			claims, err := auth.VerifyAccessToken(token, jwtSecret)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			if claims.Role != auth.RoleAdmin {
				if perm := auth.PermissionForAPI(r.URL.Path, r.Method); perm != nil {
					var roles auth.RolesDocument
					err := store.Load(rolesFile, &roles)
					if err != nil && !errors.Is(err, jsonstore.ErrNotFound) {
						writeAuthError(w, http.StatusInternalServerError, "Could not verify permissions")
						return
					}
					if !roles.HasPermission(claims.Role, *perm) {
						writeAuthError(w, http.StatusForbidden, "You do not have permission to access this resource")
						return
					}
				}
			}

			authCtx := &AuthContext{
				Username: claims.Username,
				Role:     claims.Role,
				Name:     claims.Name,
			}
			ctx := WithAuthContext(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
