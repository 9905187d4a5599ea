package ints

// Queue is a FIFO ring buffer of integers, size is always 2^n - 1.
type Queue struct {
	items      []int
	size       int
	head, tail int
}

func NewQueue(items ...int) *Queue {
	result := &Queue{size: 3}
	for result.size < len(items) {
		result.size = result.size<<1 | 1
	}
	result.items = make([]int, result.size+1)
	result.tail = copy(result.items, items)
	return result
}

func (q *Queue) IsEmpty() bool {
	return q.head == q.tail
}

func (q *Queue) Len() int {
	return (q.tail + q.size + 1 - q.head) & q.size
}

func (q *Queue) grow() {
	items := make([]int, (q.size+1)<<1)
	n := copy(items, q.items[q.head:])
	if q.head > 0 {
		copy(items[n:], q.items[:q.head])
	}
	q.head = 0
	q.tail = q.size + 1
	q.size = q.size<<1 | 1
	q.items = items
}

func (q *Queue) Push(item int) *Queue {
	q.items[q.tail] = item
	q.tail = (q.tail + 1) & q.size
	if q.tail == q.head {
		q.grow()
	}
	return q
}

// Pop removes and returns the oldest item, returns 0 for empty queue.
func (q *Queue) Pop() int {
	if q.head == q.tail {
		return 0
	}

	result := q.items[q.head]
	q.head = (q.head + 1) & q.size
	return result
}
