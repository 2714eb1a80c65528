package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
)

// ErrLockTimeout indica que o lock não foi obtido antes do fim do contexto
var ErrLockTimeout = errors.New("tempo esgotado aguardando lock")

// releaseTimeout limita a liberação, feita fora do contexto da requisição
const releaseTimeout = 2 * time.Second

// releaseScript só apaga a chave se ela ainda pertencer ao dono do token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Client é o subconjunto de comandos do Redis usado pelo RedisLocker.
// *redis.Client o implementa; os métodos de script são os exigidos por redis.Script.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	EvalSha(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd
	ScriptExists(ctx context.Context, hashes ...string) *redis.BoolSliceCmd
	ScriptLoad(ctx context.Context, script string) *redis.StringCmd
}

// RedisLocker serializa as trocas de uma conversa entre várias instâncias da API
type RedisLocker struct {
	client     Client
	logger     logger.Logger
	prefix     string
	ttl        time.Duration
	retryDelay time.Duration
}

// NewRedisLocker cria um RedisLocker; ttl deve cobrir a troca mais longa possível
func NewRedisLocker(client Client, ttl time.Duration, log logger.Logger) *RedisLocker {
	return &RedisLocker{
		client:     client,
		logger:     log,
		prefix:     "lock:conversation:",
		ttl:        ttl,
		retryDelay: 50 * time.Millisecond,
	}
}

// Lock tenta obter o lock até conseguir ou até ctx terminar
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	for {
		locked, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
			}
			return nil, fmt.Errorf("erro ao obter lock %s: %w", key, err)
		}
		if locked {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		case <-time.After(l.retryDelay):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(fullKey, token) })
	}, nil
}

func (l *RedisLocker) release(fullKey, token string) {
	// contexto próprio: a requisição pode já ter sido cancelada
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil {
		l.logger.Warn("falha ao liberar lock; a chave expira com o TTL", "key", fullKey, "ttl", l.ttl, "error", err)
	}
}
