package queue

import (
	"container/heap"
)

// Item is an element of the indexed Queue. Its priority can be decreased in place.
type Item[K comparable] struct {
	ItemId   K       // id of this item
	Priority float64 // distance from origin to this item
	Index    int     // index of the item in the heap
}

// A Queue implements the heap.Interface and hold PriorityQueueItems
type Queue[K comparable] []*Item[K]

func NewQueueItem[K comparable](itemId K, priority float64) *Item[K] {
	return &Item[K]{ItemId: itemId, Priority: priority, Index: -1}
}

func NewQueue[K comparable](initialItem *Item[K]) *Queue[K] {
	pq := make(Queue[K], 0)
	heap.Init(&pq)
	if initialItem != nil {
		heap.Push(&pq, initialItem)
	}
	return &pq
}

func (h Queue[K]) Len() int {
	return len(h)
}

func (h Queue[K]) Less(i, j int) bool {
	// MinHeap implementation
	return h[i].Priority < h[j].Priority
}

func (h Queue[K]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index, h[j].Index = i, j
}

func (h *Queue[K]) Push(item interface{}) {
	n := len(*h)
	pqItem := item.(*Item[K])
	pqItem.Index = n
	*h = append(*h, pqItem)
}

func (h *Queue[K]) Pop() interface{} {
	old := *h
	n := len(old)
	pqItem := old[n-1]
	old[n-1] = nil
	pqItem.Index = -1 // for safety
	*h = old[0 : n-1]
	return pqItem
}

// Update sets a new priority for an item which is still in the queue
func (h *Queue[K]) Update(pqItem *Item[K], newPriority float64) {
	pqItem.Priority = newPriority
	heap.Fix(h, pqItem.Index)
}
