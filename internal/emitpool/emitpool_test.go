package emitpool

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoom_RunsAllTasks(t *testing.T) {
	pool := NewPool(Config{WorkerCount: 4})
	defer pool.Close()

	var ran int64
	room := pool.CreateRoom(100)
	for i := 0; i < 100; i++ {
		room.Submit(func() error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}

	errs := room.Wait()
	assert.Empty(t, errs)
	assert.Equal(t, int64(100), atomic.LoadInt64(&ran))
}

func TestRoom_CollectsAllErrors(t *testing.T) {
	pool := NewPool(Config{WorkerCount: 2})
	defer pool.Close()

	room := pool.CreateRoom(10)
	for i := 0; i < 10; i++ {
		i := i
		room.Submit(func() error {
			if i%2 == 0 {
				return fmt.Errorf("task %d failed", i)
			}
			return nil
		})
	}

	errs := room.Wait()
	assert.Len(t, errs, 5)
}

func TestPool_MultipleRooms(t *testing.T) {
	pool := NewPool(Config{WorkerCount: 4})
	defer pool.Close()

	var total int64
	first := pool.CreateRoom(20)
	second := pool.CreateRoom(20)
	for i := 0; i < 20; i++ {
		first.Submit(func() error {
			atomic.AddInt64(&total, 1)
			return nil
		})
		second.Submit(func() error {
			atomic.AddInt64(&total, 1)
			return nil
		})
	}

	assert.Empty(t, first.Wait())
	assert.Empty(t, second.Wait())
	assert.Equal(t, int64(40), atomic.LoadInt64(&total))
}

func TestNewPool_Defaults(t *testing.T) {
	pool := NewPool(Config{})
	defer pool.Close()

	if pool.config.WorkerCount < 1 {
		t.Error("Expected a positive default worker count")
	}
	if pool.config.GlobalBuffer < 1 {
		t.Error("Expected a positive default global buffer")
	}
}

func TestRoom_EmptyWait(t *testing.T) {
	pool := NewPool(Config{WorkerCount: 1})
	defer pool.Close()

	room := pool.CreateRoom(1)
	assert.Empty(t, room.Wait())
}
