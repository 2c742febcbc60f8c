package bubbleview

import "slices"

// handlerEntry pairs a callback with the id its CallbackHandle removes.
type handlerEntry[T any] struct {
	id uint32
	fn func(T)
}

// handlerList is an ordered set of callbacks for one event kind.
type handlerList[T any] struct {
	entries []handlerEntry[T]
	nextID  uint32
}

func (l *handlerList[T]) add(fn func(T)) CallbackHandle {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, handlerEntry[T]{id: id, fn: fn})
	return CallbackHandle{remove: func() { l.remove(id) }}
}

func (l *handlerList[T]) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id == id {
			copy(l.entries[i:], l.entries[i+1:])
			l.entries[len(l.entries)-1] = handlerEntry[T]{}
			l.entries = l.entries[:len(l.entries)-1]
			return
		}
	}
}

// fire calls every handler registered when it starts. Handlers may add or
// remove handles, including their own, while it runs.
func (l *handlerList[T]) fire(v T) {
	switch len(l.entries) {
	case 0:
		return
	case 1:
		l.entries[0].fn(v)
		return
	}
	for _, e := range slices.Clone(l.entries) {
		e.fn(v)
	}
}

func (l *handlerList[T]) len() int {
	return len(l.entries)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters this callback so it no longer fires. Removing twice or
// removing a zero handle is a no-op.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove()
}
