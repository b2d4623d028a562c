package queue

import (
	"container/heap"
	"fmt"
	"strings"
)

// MinHeap is a priority queue which pops the item with the lowest priority first.
// Items with equal priority are popped in the order they were pushed.
// There is no decrease-key: outdated items stay in the heap and have to be skipped by the caller.
type MinHeap[T Priorizable] struct {
	Queue  PriorityQueue[T] // hold the priority queue
	pushed uint64           // number of pushes so far, used as tie breaker
}

func NewMinHeap[T Priorizable](items []T) *MinHeap[T] {
	h := &MinHeap[T]{Queue: make(PriorityQueue[T], 0, len(items))}
	for _, item := range items {
		h.Queue = append(h.Queue, entry[T]{item: item, sequence: h.pushed})
		h.pushed++
	}
	heap.Init(&h.Queue)
	return h
}

type Priorizable interface {
	Priority() float64
	String() string
}

type entry[T Priorizable] struct {
	item     T
	sequence uint64
}

// Implements heap.Interface
type PriorityQueue[T Priorizable] []entry[T]

func (q PriorityQueue[T]) Len() int { return len(q) }
func (q PriorityQueue[T]) Less(i, j int) bool {
	pi, pj := q[i].item.Priority(), q[j].item.Priority()
	if pi != pj {
		return pi < pj
	}
	return q[i].sequence < q[j].sequence
}
func (q PriorityQueue[T]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *PriorityQueue[T]) Push(item any) {
	*q = append(*q, item.(entry[T]))
}
func (q *PriorityQueue[T]) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = entry[T]{} // release the item
	*q = old[:n-1]
	return e
}

func (h *MinHeap[T]) Len() int { return h.Queue.Len() }
func (h *MinHeap[T]) Push(item T) {
	heap.Push(&h.Queue, entry[T]{item: item, sequence: h.pushed})
	h.pushed++
}
func (h *MinHeap[T]) Pop() T  { return heap.Pop(&h.Queue).(entry[T]).item }
func (h *MinHeap[T]) Peek() T { return h.Queue[0].item }
func (h *MinHeap[T]) PeekAt(index int) T {
	if index >= h.Len() {
		panic("index out of bounds")
	}
	return h.Queue[index].item
}
func (h *MinHeap[T]) String() string {
	var sb strings.Builder
	for i := 0; i < h.Len(); i++ {
		sb.WriteString(fmt.Sprintf("%v: %v", i, h.PeekAt(i).String()))
	}
	return sb.String()
}
