package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-TurfBooking/internal/api/handlers"
)

const (
	msgTooManyRequests = "слишком много запросов, попробуйте позже"
	defaultBurst       = 5
)

// RateLimiter ограничивает частоту запросов по пользователю или IP.
// Ключи, к которым давно не обращались, удаляются через Sweep.
type RateLimiter struct {
	limiters sync.Map // key -> *visitor
	rps      rate.Limit
	burst    int
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nano
}

// NewRateLimiter создает ограничитель; burst <= 0 заменяется значением по умолчанию
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = defaultBurst
	}
	return &RateLimiter{rps: rate.Limit(rps), burst: burst, now: time.Now}
}

func (l *RateLimiter) getLimiter(key string) *rate.Limiter {
	v, ok := l.limiters.Load(key)
	if !ok {
		v, _ = l.limiters.LoadOrStore(key, &visitor{limiter: rate.NewLimiter(l.rps, l.burst)})
	}

	vis := v.(*visitor)
	vis.lastSeen.Store(l.now().UnixNano())
	return vis.limiter
}

// Sweep удаляет ключи, не обращавшиеся дольше idle. Возвращает число удаленных.
func (l *RateLimiter) Sweep(idle time.Duration) int {
	cutoff := l.now().Add(-idle).UnixNano()
	removed := 0
	l.limiters.Range(func(key, v any) bool {
		if v.(*visitor).lastSeen.Load() < cutoff {
			l.limiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// StartCleanup раз в interval запускает Sweep до закрытия stopCh
func (l *RateLimiter) StartCleanup(interval, idle time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				l.Sweep(idle)
			}
		}
	}()
}

func (l *RateLimiter) size() int {
	n := 0
	l.limiters.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

// Middleware отвечает 429, когда ключ исчерпал лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.getLimiter(clientKey(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
