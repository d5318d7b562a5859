// Package queue implements the scored priority queue used by path search.
package queue

import "math"

// Entry is an (id, score) pair.
type Entry struct {
	ID    int32
	Score float64
}

// heapItem is a physical heap slot. Seq breaks score ties in insertion order.
type heapItem struct {
	Entry
	seq uint64
}

// Scored is a binary min-heap of entries keyed by score with lazy deletion.
//
// Enqueue never searches for or removes an older entry of the same id; it
// records the new score in the latest-score table and pushes a new slot.
// Dequeue discards popped slots that are not the latest push for their id.
// The heap may therefore hold more slots than live ids. NaN scores order
// after every number.
//
// Scored is not safe for concurrent use.
type Scored struct {
	items  []heapItem
	latest map[int32]heapItem
	seq    uint64
}

// NewScored creates a queue with room for capacity slots.
func NewScored(capacity int) *Scored {
	return &Scored{
		items:  make([]heapItem, 0, capacity),
		latest: make(map[int32]heapItem, capacity),
	}
}

// Enqueue assigns score to id and pushes a heap slot for it.
func (q *Scored) Enqueue(id int32, score float64) {
	item := heapItem{Entry: Entry{ID: id, Score: score}, seq: q.seq}
	q.seq++
	q.latest[id] = item
	q.items = append(q.items, item)
	q.siftUp(len(q.items) - 1)
}

// Dequeue removes and returns the live entry with the lowest score.
// It returns false once no live entry remains.
func (q *Scored) Dequeue() (Entry, bool) {
	for {
		item, ok := q.pop()
		if !ok {
			return Entry{}, false
		}

		latest, live := q.latest[item.ID]
		if !live || latest.seq != item.seq {
			// stale
			continue
		}

		delete(q.latest, item.ID)
		return item.Entry, true
	}
}

// Score returns the latest score assigned to id that has not been dequeued yet.
func (q *Scored) Score(id int32) (float64, bool) {
	item, ok := q.latest[id]
	return item.Score, ok
}

// Len returns the number of heap slots, stale ones included.
func (q *Scored) Len() int { return len(q.items) }

// Live returns the number of ids with a pending score.
func (q *Scored) Live() int { return len(q.latest) }

// Empty reports whether no live entry remains.
func (q *Scored) Empty() bool { return len(q.latest) == 0 }

// Reset clears the queue for reuse.
func (q *Scored) Reset() {
	q.items = q.items[:0]
	clear(q.latest)
	q.seq = 0
}

func (q *Scored) pop() (heapItem, bool) {
	n := len(q.items)
	if n == 0 {
		return heapItem{}, false
	}
	root := q.items[0]
	last := q.items[n-1]
	q.items[n-1] = heapItem{}
	q.items = q.items[:n-1]
	if n-1 > 0 {
		q.items[0] = last
		q.siftDown(0)
	}
	return root, true
}

func (q *Scored) less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	aNaN, bNaN := math.IsNaN(a.Score), math.IsNaN(b.Score)
	switch {
	case aNaN != bNaN:
		return bNaN
	case !aNaN && a.Score != b.Score:
		return a.Score < b.Score
	}
	return a.seq < b.seq
}

func (q *Scored) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(i, p) {
			return
		}
		q.items[i], q.items[p] = q.items[p], q.items[i]
		i = p
	}
}

func (q *Scored) siftDown(i int) {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && q.less(r, l) {
			best = r
		}
		if !q.less(best, i) {
			return
		}
		q.items[i], q.items[best] = q.items[best], q.items[i]
		i = best
	}
}
