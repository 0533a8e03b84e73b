package search

import "container/heap"

// frontier is the open-state container every strategy pops from and pushes
// into. DFS and BFS need no priority; UCS and A* are backed by a priority
// queue keyed on a per-strategy function of the state.
type frontier interface {
	push(*State)
	pop() *State
	isEmpty() bool
	len() int
}

// stackFrontier gives LIFO order: depth-first search.
type stackFrontier struct {
	items []*State
}

func newStackFrontier() *stackFrontier {
	return &stackFrontier{}
}

func (f *stackFrontier) push(s *State) {
	f.items = append(f.items, s)
}

func (f *stackFrontier) pop() *State {
	n := len(f.items) - 1
	s := f.items[n]
	f.items = f.items[:n]
	return s
}

func (f *stackFrontier) isEmpty() bool { return len(f.items) == 0 }
func (f *stackFrontier) len() int      { return len(f.items) }

// queueFrontier gives FIFO order: breadth-first search. head advances
// instead of reslicing from the front so push/pop both stay O(1).
type queueFrontier struct {
	items []*State
	head  int
}

func newQueueFrontier() *queueFrontier {
	return &queueFrontier{}
}

func (f *queueFrontier) push(s *State) {
	f.items = append(f.items, s)
}

func (f *queueFrontier) pop() *State {
	s := f.items[f.head]
	f.head++
	return s
}

func (f *queueFrontier) isEmpty() bool { return f.head >= len(f.items) }
func (f *queueFrontier) len() int      { return len(f.items) - f.head }

// priorityItem is one entry of the heap backing priorityFrontier. seq
// breaks ties in insertion order, matching the deterministic-ordering
// guarantee of the engine.
type priorityItem struct {
	state    *State
	priority int
	seq      int
}

type priorityHeap []*priorityItem

func (h priorityHeap) Len() int { return len(h) }
func (h priorityHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h priorityHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *priorityHeap) Push(x any)   { *h = append(*h, x.(*priorityItem)) }
func (h *priorityHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// priorityFrontier gives min-priority order, keyed by key(state). UCS keys
// on cumulative cost; A* keys on cost plus heuristic.
type priorityFrontier struct {
	heap    priorityHeap
	nextSeq int
	key     func(*State) int
}

func newPriorityFrontier(key func(*State) int) *priorityFrontier {
	return &priorityFrontier{key: key}
}

func (f *priorityFrontier) push(s *State) {
	heap.Push(&f.heap, &priorityItem{state: s, priority: f.key(s), seq: f.nextSeq})
	f.nextSeq++
}

func (f *priorityFrontier) pop() *State {
	item := heap.Pop(&f.heap).(*priorityItem)
	return item.state
}

func (f *priorityFrontier) isEmpty() bool { return len(f.heap) == 0 }
func (f *priorityFrontier) len() int      { return len(f.heap) }
