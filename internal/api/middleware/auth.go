package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-TurfBooking/internal/api/handlers"
)

const (
	HeaderUserID        = "X-User-ID"
	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "

	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidToken  = "недействительный токен"
	msgMissingToken  = "отсутствует токен авторизации"
)

type contextKey string

const userIDKey contextKey = "user_id"

var (
	errInvalidToken   = errors.New("invalid token")
	errInvalidSubject = errors.New("invalid subject claim")
)

// GetUserID возвращает ID пользователя, установленный middleware Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Auth определяет пользователя.
// Если задан секрет, принимается только Bearer токен (HS256, claim sub), заголовок X-User-ID игнорируется.
// Без секрета пользователь берется из X-User-ID (доверенный шлюз перед сервисом).
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				userID int64
				ok     bool
			)
			if jwtSecret != "" {
				userID, ok = bearerUserID(w, r, jwtSecret)
			} else {
				userID, ok = headerUserID(w, r)
			}
			if !ok {
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func bearerUserID(w http.ResponseWriter, r *http.Request, secret string) (int64, bool) {
	auth := r.Header.Get(headerAuthorization)
	if !strings.HasPrefix(auth, bearerPrefix) {
		handlers.RespondUnauthorized(w, msgMissingToken)
		return 0, false
	}

	userID, err := parseToken(strings.TrimPrefix(auth, bearerPrefix), secret)
	if err != nil {
		handlers.RespondUnauthorized(w, msgInvalidToken)
		return 0, false
	}
	return userID, true
}

func headerUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.Header.Get(HeaderUserID)
	if raw == "" {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, false
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondUnauthorized(w, msgInvalidUserID)
		return 0, false
	}
	return userID, true
}

func parseToken(raw, secret string) (int64, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", errInvalidToken, t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidToken
	}

	// sub по RFC строка, но числовой ID тоже принимаем
	var userID int64
	switch sub := claims["sub"].(type) {
	case string:
		userID, err = strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return 0, errInvalidSubject
		}
	case float64:
		userID = int64(sub)
	default:
		return 0, errInvalidSubject
	}

	if userID <= 0 {
		return 0, errInvalidSubject
	}
	return userID, nil
}
