package middlewares

import (
	"context"
	"fmt"
	"meetcue-service/internal/app/models"
	"meetcue-service/internal/pkg/constvars"
	"meetcue-service/internal/pkg/exceptions"
	"meetcue-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Authenticate resolves the bearer token into a redis-backed session and puts
// the user's identity on the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sessionID, err := utils.ParseJWT(tokenString, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		sessionKey := fmt.Sprintf(constvars.RedisSessionKeyFormat, sessionID)
		raw, err := m.RedisRepository.Get(r.Context(), sessionKey)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		if raw == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrSessionInvalid(nil))
			return
		}

		session := new(models.Session)
		if err := json.Unmarshal([]byte(raw), session); err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrSessionInvalid(err))
			return
		}
		if !session.ExpiresAt.IsZero() && session.ExpiresAt.Before(time.Now()) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrSessionInvalid(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_USER_ID_KEY, session.UserID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_USER_NAME_KEY, session.UserName)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
