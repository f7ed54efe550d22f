package rowan

// ListNode is an element of a List. It owns exactly one value and belongs to
// at most one list at a time.
type ListNode[T any] struct {
	Value T

	prev, next *ListNode[T]
	list       *List[T]
}

// Next returns the node after n, or nil at the tail.
func (n *ListNode[T]) Next() *ListNode[T] {
	return n.next
}

// Prev returns the node before n, or nil at the head.
func (n *ListNode[T]) Prev() *ListNode[T] {
	return n.prev
}

// InList reports whether n is currently linked into a list.
func (n *ListNode[T]) InList() bool {
	return n.list != nil
}

// List is a doubly linked list with head insertion: the most recently
// inserted value is read first. Every ordered collection in rowan (scenes,
// root objects, properties, input events, log entries) is a List, so
// traversal order is always "newest first".
//
// The zero value is an empty list ready to use.
type List[T any] struct {
	head, tail *ListNode[T]
	length     int
}

// Insert wraps v in a new node, links it at the head and returns the node.
// The node reference can later be passed to Remove in O(1).
func (l *List[T]) Insert(v T) *ListNode[T] {
	n := &ListNode[T]{Value: v}
	l.InsertNode(n)
	return n
}

// InsertNode links an unowned node at the head of the list.
// Panics if the node already belongs to a list.
func (l *List[T]) InsertNode(n *ListNode[T]) {
	if n == nil {
		panic("rowan: cannot insert nil list node")
	}
	if n.list != nil {
		panic("rowan: list node already belongs to a list")
	}
	n.list = l
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.length++
}

// Remove unlinks n from the list. The value is left untouched; the caller
// decides its lifetime. Returns false, and does nothing, when n is nil or
// belongs to a different list or to no list.
func (l *List[T]) Remove(n *ListNode[T]) bool {
	if n == nil || n.list != l {
		return false
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
	n.list = nil
	l.length--
	return true
}

// Head returns the most recently inserted node, or nil when empty.
func (l *List[T]) Head() *ListNode[T] {
	return l.head
}

// Tail returns the oldest node, or nil when empty.
func (l *List[T]) Tail() *ListNode[T] {
	return l.tail
}

// Len returns the number of nodes.
func (l *List[T]) Len() int {
	return l.length
}

// Find returns the first node, head first, whose value satisfies match.
func (l *List[T]) Find(match func(T) bool) *ListNode[T] {
	for n := l.head; n != nil; n = n.next {
		if match(n.Value) {
			return n
		}
	}
	return nil
}

// Each calls fn for every value, head first, until fn returns false.
// fn may remove the node it is visiting.
func (l *List[T]) Each(fn func(T) bool) {
	for n := l.head; n != nil; {
		next := n.next
		if !fn(n.Value) {
			return
		}
		n = next
	}
}

// Values returns the values head first in a new slice.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.length)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.Value)
	}
	return out
}

// Clear unlinks every node.
func (l *List[T]) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		n.prev, n.next, n.list = nil, nil, nil
		n = next
	}
	l.head, l.tail, l.length = nil, nil, 0
}
