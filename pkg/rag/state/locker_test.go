package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLocker_SerializesSameKey(t *testing.T) {
	l := NewKeyedLocker()
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("session-1")
			defer unlock()
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, l.size())
}

func TestKeyedLocker_IndependentKeys(t *testing.T) {
	l := NewKeyedLocker()
	unlockA := l.Lock("a")

	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("b")
		unlockB()
		close(done)
	}()
	<-done

	assert.Equal(t, 1, l.size())
	unlockA()
	assert.Equal(t, 0, l.size())
}
