package utils

// Set implements a set for the type T, based on a map.
type Set[T comparable] map[T]struct{}

// MakeSet returns an empty Set of the given type. The size is optional and is
// passed to the underlying map creation.
func MakeSet[T comparable](size ...int) Set[T] {
	if len(size) == 0 {
		return make(Set[T])
	}
	return make(Set[T], size[0])
}

// SetWith creates a Set with the given elements inserted.
func SetWith[T comparable](elements ...T) Set[T] {
	s := MakeSet[T](len(elements))
	s.Insert(elements...)
	return s
}

// Has returns whether the element is in the set.
func (s Set[T]) Has(element T) bool {
	_, found := s[element]
	return found
}

// Insert the elements into the set.
func (s Set[T]) Insert(elements ...T) {
	for _, element := range elements {
		s[element] = struct{}{}
	}
}

// Sub returns a new set with the elements of s that are not in s2.
func (s Set[T]) Sub(s2 Set[T]) Set[T] {
	result := MakeSet[T](len(s))
	for element := range s {
		if !s2.Has(element) {
			result.Insert(element)
		}
	}
	return result
}

// Equal returns whether the two sets have exactly the same elements.
func (s Set[T]) Equal(s2 Set[T]) bool {
	if len(s) != len(s2) {
		return false
	}
	for element := range s {
		if !s2.Has(element) {
			return false
		}
	}
	return true
}
