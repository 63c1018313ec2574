// Package redis implementa el límite de intentos de login con ventana fija.
// Con Redis disponible el contador es compartido entre instancias; sin Redis
// (o ante errores) degrada a contadores en memoria local con un período de
// enfriamiento antes de reintentar Redis.
package redis

import (
	"context"
	"sync"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/tu-usuario/breakfast-pos/pkg/logger"
)

const keyPrefix = "login_attempts:"

// errorCooldown tiempo sin tocar Redis después de un error de conexión.
const errorCooldown = 30 * time.Second

// LoginLimiter contador de intentos fallidos por usuario con ventana fija.
type LoginLimiter struct {
	client      *goredis.Client
	window      time.Duration
	maxAttempts int
	log         *logger.Logger

	mu         sync.Mutex
	local      map[string]*localCounter
	redisDownT time.Time
}

type localCounter struct {
	count     int
	expiresAt time.Time
}

// NewLoginLimiter construye el limitador. redisURL vacío = solo memoria local.
func NewLoginLimiter(redisURL string, windowSeconds, maxAttempts int, log *logger.Logger) (*LoginLimiter, error) {
	limiter := &LoginLimiter{
		window:      time.Duration(windowSeconds) * time.Second,
		maxAttempts: maxAttempts,
		log:         log,
		local:       make(map[string]*localCounter),
	}
	if redisURL == "" {
		return limiter, nil
	}
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	limiter.client = goredis.NewClient(opts)
	return limiter, nil
}

// Close cierra la conexión a Redis si existe.
func (l *LoginLimiter) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}

func (l *LoginLimiter) redisAvailable() bool {
	if l.client == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return time.Now().After(l.redisDownT)
}

func (l *LoginLimiter) markRedisDown(err error) {
	l.mu.Lock()
	l.redisDownT = time.Now().Add(errorCooldown)
	l.mu.Unlock()
	l.log.Warn().Err(err).Msg("rate limit: Redis no disponible, usando contadores locales")
}

// Allow indica si el usuario aún tiene intentos disponibles en la ventana.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.redisAvailable() {
		count, err := l.client.Get(ctx, keyPrefix+key).Int()
		if err == goredis.Nil {
			return true, nil
		}
		if err != nil {
			l.markRedisDown(err)
			return l.allowLocal(key), nil
		}
		return count < l.maxAttempts, nil
	}
	return l.allowLocal(key), nil
}

// RegisterFailure registra un intento fallido; el primer fallo de la ventana
// fija su expiración.
func (l *LoginLimiter) RegisterFailure(ctx context.Context, key string) error {
	if l.redisAvailable() {
		pipe := l.client.TxPipeline()
		pipe.Incr(ctx, keyPrefix+key)
		pipe.Expire(ctx, keyPrefix+key, l.window)
		if _, err := pipe.Exec(ctx); err != nil {
			l.markRedisDown(err)
			l.failLocal(key)
		}
		return nil
	}
	l.failLocal(key)
	return nil
}

// Reset limpia el contador tras un login exitoso.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if l.redisAvailable() {
		if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
			l.markRedisDown(err)
		}
	}
	l.mu.Lock()
	delete(l.local, key)
	l.mu.Unlock()
	return nil
}

func (l *LoginLimiter) allowLocal(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	counter, ok := l.local[key]
	if !ok || time.Now().After(counter.expiresAt) {
		return true
	}
	return counter.count < l.maxAttempts
}

func (l *LoginLimiter) failLocal(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	counter, ok := l.local[key]
	if !ok || now.After(counter.expiresAt) {
		l.local[key] = &localCounter{count: 1, expiresAt: now.Add(l.window)}
		return
	}
	counter.count++
}
