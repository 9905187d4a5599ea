package ints

const IntSizeShift = 5 + (^uint(0) >> 32 & 1)
const IntSize = 1 << IntSizeShift

// Set is a bit set of non-negative integers (rule ids).
type Set struct {
	chunks []uint
}

func countBits(chunk uint) int {
	result := 0
	for chunk != 0 {
		result++
		chunk &= (chunk - 1)
	}
	return result
}

func NewSet(items ...int) *Set {
	result := &Set{}
	result.Add(items...)
	return result
}

func bitMask(item int) uint {
	return 1 << (uint(item) & (IntSize - 1))
}

func (s *Set) allocate(item int) {
	chunkCnt := (item >> IntSizeShift) + 1
	if chunkCnt <= len(s.chunks) {
		return
	}

	chunks := make([]uint, chunkCnt)
	copy(chunks, s.chunks)
	s.chunks = chunks
}

// Add panics on negative items.
func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			panic("ints: negative set item")
		}
		s.allocate(item)
		s.chunks[item>>IntSizeShift] |= bitMask(item)
	}
	return s
}

func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if s.Contains(item) {
			s.chunks[item>>IntSizeShift] &= ^bitMask(item)
		}
	}
	return s
}

func (s *Set) Contains(item int) bool {
	index := item >> IntSizeShift
	if item < 0 || index >= len(s.chunks) {
		return false
	}
	return s.chunks[index]&bitMask(item) != 0
}

func (s *Set) Len() int {
	result := 0
	for _, chunk := range s.chunks {
		result += countBits(chunk)
	}
	return result
}

func (s *Set) IsEmpty() bool {
	for _, chunk := range s.chunks {
		if chunk != 0 {
			return false
		}
	}
	return true
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		item := i << IntSizeShift
		for chunk != 0 {
			if chunk&1 != 0 {
				result = append(result, item)
			}
			item++
			chunk >>= 1
		}
	}
	return result
}
