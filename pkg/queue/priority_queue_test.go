package queue

import (
	"container/heap"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	name     string
	priority float64
}

func (i testItem) Priority() float64 { return i.priority }
func (i testItem) String() string    { return fmt.Sprintf("%v %v\n", i.name, i.priority) }

func TestMinHeapOrder(t *testing.T) {
	h := NewMinHeap([]testItem{{"c", 3}, {"a", 1}})
	h.Push(testItem{"b", 2})
	h.Push(testItem{"z", 0.5})

	require.Equal(t, 4, h.Len())
	assert.Equal(t, "z", h.Peek().name)

	var order []string
	for h.Len() > 0 {
		order = append(order, h.Pop().name)
	}
	assert.Equal(t, []string{"z", "a", "b", "c"}, order)
}

func TestMinHeapStableTies(t *testing.T) {
	h := NewMinHeap[testItem](nil)
	for _, name := range []string{"first", "second", "third", "fourth", "fifth"} {
		h.Push(testItem{name, 1})
	}
	h.Push(testItem{"early", 0})

	var order []string
	for h.Len() > 0 {
		order = append(order, h.Pop().name)
	}
	assert.Equal(t, []string{"early", "first", "second", "third", "fourth", "fifth"}, order)
}

func TestMinHeapString(t *testing.T) {
	h := NewMinHeap([]testItem{{"a", 1}})
	assert.Equal(t, "0: a 1\n", h.String())
	assert.Panics(t, func() { h.PeekAt(1) })
}

func TestQueueUpdate(t *testing.T) {
	pq := NewQueue(NewQueueItem("a", 5))
	b := NewQueueItem("b", 3)
	c := NewQueueItem("c", 4)
	heap.Push(pq, b)
	heap.Push(pq, c)

	pq.Update(c, 1)

	var order []string
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*Item[string])
		assert.Equal(t, -1, item.Index)
		order = append(order, item.ItemId)
	}
	assert.Equal(t, []string{"c", "b", "a"}, order)
}
