package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	k := newKeyedMutex()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("s1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, counter)
	assert.Equal(t, 0, k.size(), "idle keys must be released")
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	k := newKeyedMutex()

	unlockA := k.Lock("a")
	done := make(chan struct{})
	go func() {
		unlock := k.Lock("b")
		unlock()
		close(done)
	}()
	<-done
	unlockA()

	assert.Equal(t, 0, k.size())
}
