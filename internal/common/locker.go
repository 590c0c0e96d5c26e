package common

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/taskreward/pkg/xredis"
)

var ErrLockTimeout = errors.New("timeout while waiting for lock")

// Locker serializes operations sharing the same key. The returned function
// releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type keyedMutex struct {
	mu sync.Mutex

	// state guards refs and dead.
	state sync.Mutex
	refs  int
	dead  bool
}

// LocalLocker serializes goroutines of one process. A key is forgotten once
// nobody holds or waits for it.
type LocalLocker struct {
	mutexes *xsync.MapOf[string, *keyedMutex]
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{mutexes: xsync.NewMapOf[*keyedMutex]()}
}

func (l *LocalLocker) acquire(key string) *keyedMutex {
	for {
		km, _ := l.mutexes.LoadOrStore(key, &keyedMutex{})

		km.state.Lock()
		if km.dead {
			// Removed by the last holder between our load and now.
			km.state.Unlock()
			continue
		}
		km.refs++
		km.state.Unlock()
		return km
	}
}

func (l *LocalLocker) release(key string, km *keyedMutex) {
	km.mu.Unlock()

	km.state.Lock()
	defer km.state.Unlock()
	km.refs--
	if km.refs == 0 {
		km.dead = true
		l.mutexes.Delete(key)
	}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	km := l.acquire(key)

	locked := make(chan struct{})
	go func() {
		km.mu.Lock()
		close(locked)
	}()

	select {
	case <-locked:
		var once sync.Once
		return func() { once.Do(func() { l.release(key, km) }) }, nil
	case <-ctx.Done():
		// Give the lock back as soon as the waiting goroutine gets it.
		go func() {
			<-locked
			l.release(key, km)
		}()
		return nil, ctx.Err()
	}
}

// RedisLocker serializes every process sharing the same redis.
type RedisLocker struct {
	client  xredis.Client
	ttl     time.Duration
	retry   time.Duration
	maxWait time.Duration
}

func NewRedisLocker(client xredis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:  client,
		ttl:     ttl,
		retry:   20 * time.Millisecond,
		maxWait: ttl,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.maxWait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl)
		if err != nil {
			return nil, err
		}

		if ok {
			return func() {
				// The lock expires by itself if this fails.
				_ = l.client.DelIfEqual(context.Background(), key, token)
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}
