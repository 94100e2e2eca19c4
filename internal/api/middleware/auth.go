package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
)

const (
	// Заголовки проставляются шлюзом после аутентификации
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	roleAdmin = "admin"

	msgMissingUserID = "отсутствует ID пользователя"
	msgAdminOnly     = "доступно только администратору"
)

type contextKey string

const (
	userIDKey  contextKey = "user_id"
	isAdminKey contextKey = "is_admin"
)

// Auth извлекает пользователя из заголовков и кладёт его в context.
// Без корректного X-User-ID запрос отклоняется с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(HeaderUserID)), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		isAdmin := strings.EqualFold(strings.TrimSpace(r.Header.Get(HeaderUserRole)), roleAdmin)

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, isAdminKey, isAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только администраторов. Ставится после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя, установленный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// IsAdmin возвращает true для администратора
func IsAdmin(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(isAdminKey).(bool)
	return isAdmin
}

// WithUser кладёт пользователя в context (для тестов обработчиков)
func WithUser(ctx context.Context, userID int64, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, isAdminKey, isAdmin)
}
