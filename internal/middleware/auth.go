package middleware

import (
	"context"
	"net/http"
	"strings"
)

type credentialKey struct{}

// Credential извлекает миддлваром учётные данные из контекста запроса.
// Пустая строка означает анонимный запрос.
func Credential(ctx context.Context) string {
	credential, _ := ctx.Value(credentialKey{}).(string)
	return credential
}

// extractCredential ищет учётные данные в порядке убывания приоритета:
// заголовок X-API-Key, Bearer-токен, параметр api_key в query.
func extractCredential(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}

	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	return r.URL.Query().Get("api_key")
}

// Auth добавляет учётные данные запроса в контекст. Проверка их
// подлинности откладывается до обработчика: аутентификация нужна
// не каждому маршруту.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if credential := extractCredential(r); credential != "" {
			ctx := context.WithValue(r.Context(), credentialKey{}, credential)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}
