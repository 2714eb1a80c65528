package chat

import (
	"context"
	"sync"
)

// Locker serializa as trocas de uma mesma conversa.
// Lock bloqueia até obter o lock da chave ou até ctx terminar e devolve a função de liberação.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// KeyedMutex é um Locker em memória, válido para uma única instância da API
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	ch      chan struct{}
	waiters int
}

// NewKeyedMutex cria um KeyedMutex vazio
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock implementa Locker
func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedEntry{ch: make(chan struct{}, 1)}
		k.locks[key] = entry
	}
	entry.waiters++
	k.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, entry, false)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { k.release(key, entry, true) })
	}, nil
}

func (k *KeyedMutex) release(key string, entry *keyedEntry, held bool) {
	if held {
		<-entry.ch
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	entry.waiters--
	if entry.waiters == 0 {
		delete(k.locks, key)
	}
}

// Len retorna quantas chaves estão em uso
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
