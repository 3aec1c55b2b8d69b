// Package seq provides a small ordered container used wherever the shell
// needs an owned, index-addressable sequence (token streams, argument
// lists). Indices may be negative to address elements from the end, e.g.
// -1 is the last element.
package seq

// Seq is an ordered, mutable sequence. The zero value is empty and ready
// to use.
type Seq[T any] struct {
	elems []T
}

// New returns an empty sequence.
func New[T any]() *Seq[T] {
	return &Seq[T]{}
}

// Of returns a sequence holding the given elements in order.
func Of[T any](elems ...T) *Seq[T] {
	s := New[T]()
	s.elems = append(s.elems, elems...)
	return s
}

// Len reports the number of elements in the sequence.
func (s *Seq[T]) Len() int {
	return len(s.elems)
}

// Push prepends v to the front of the sequence.
func (s *Seq[T]) Push(v T) {
	s.elems = append([]T{v}, s.elems...)
}

// Append adds v at the end of the sequence.
func (s *Seq[T]) Append(v T) {
	s.elems = append(s.elems, v)
}

// Insert places v so it occupies position pos. Valid positions are
// -Len()-1 through Len(); inserting at Len() (or -1) appends. Reports
// whether the position was valid.
func (s *Seq[T]) Insert(v T, pos int) bool {
	n := len(s.elems)
	if pos < -n-1 || pos > n {
		return false
	}
	if pos < 0 {
		pos += n + 1
	}

	s.elems = append(s.elems, v)
	copy(s.elems[pos+1:], s.elems[pos:])
	s.elems[pos] = v
	return true
}

// At returns the element at pos. The second result is false if pos is out
// of range.
func (s *Seq[T]) At(pos int) (T, bool) {
	i, ok := s.index(pos)
	if !ok {
		var zero T
		return zero, false
	}
	return s.elems[i], true
}

// Remove deletes and returns the element at pos. The second result is
// false if pos is out of range, in which case the sequence is unchanged.
func (s *Seq[T]) Remove(pos int) (T, bool) {
	i, ok := s.index(pos)
	if !ok {
		var zero T
		return zero, false
	}

	v := s.elems[i]
	s.elems = append(s.elems[:i], s.elems[i+1:]...)
	return v, true
}

// Join moves every element of other onto the end of s, draining other.
func (s *Seq[T]) Join(other *Seq[T]) {
	s.elems = append(s.elems, other.elems...)
	other.elems = nil
}

// Copy returns an independent sequence with the same elements.
func (s *Seq[T]) Copy() *Seq[T] {
	out := New[T]()
	out.elems = append(out.elems, s.elems...)
	return out
}

// Reverse flips the order of the elements in place.
func (s *Seq[T]) Reverse() {
	for i, j := 0, len(s.elems)-1; i < j; i, j = i+1, j-1 {
		s.elems[i], s.elems[j] = s.elems[j], s.elems[i]
	}
}

// ForEach calls fn once per element, in order, with the element's index.
func (s *Seq[T]) ForEach(fn func(pos int, v T)) {
	for i, v := range s.elems {
		fn(i, v)
	}
}

// index normalizes pos, allowing negative positions counted from the end.
func (s *Seq[T]) index(pos int) (int, bool) {
	n := len(s.elems)
	if pos < -n || pos >= n {
		return 0, false
	}
	if pos < 0 {
		pos += n
	}
	return pos, true
}
