package usecase

import (
	"hash/fnv"
	"sync"
)

// stripeCount is a power of two so the hash folds with a mask.
const stripeCount = 512

// keyLock serializes work per string key using striped mutexes. Two keys may
// share a stripe; that only costs contention, never correctness.
type keyLock struct {
	stripes [stripeCount]sync.Mutex
}

func newKeyLock() *keyLock {
	return &keyLock{}
}

func (k *keyLock) lock(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	mu := &k.stripes[h.Sum32()&(stripeCount-1)]
	mu.Lock()
	return mu
}
