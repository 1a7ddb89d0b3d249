package store

// collection holds one entity slice together with the initial contents it
// resets to. Order is insertion order: add appends, update replaces in
// place, delete preserves the order of the survivors.
type collection[T any] struct {
	items   []T
	initial []T
	idOf    func(T) string
}

func newCollection[T any](initial []T, idOf func(T) string) collection[T] {
	return collection[T]{
		items:   append([]T(nil), initial...),
		initial: append([]T(nil), initial...),
		idOf:    idOf,
	}
}

func (c *collection[T]) add(r T) {
	c.items = append(c.items, r)
}

// update replaces the record with a matching id, keeping its position.
// A missing id is a silent no-op.
func (c *collection[T]) update(r T) bool {
	id := c.idOf(r)
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = r
			return true
		}
	}
	return false
}

// deleteByID removes the record with a matching id. A missing id is a
// silent no-op.
func (c *collection[T]) deleteByID(id string) bool {
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// reset discards everything and restores the initial contents.
func (c *collection[T]) reset() {
	c.items = append([]T(nil), c.initial...)
}

// replace swaps the current contents without touching the initial set.
// Used when rehydrating from a persisted snapshot.
func (c *collection[T]) replace(items []T) {
	c.items = append([]T(nil), items...)
}

func (c *collection[T]) list() []T {
	return append([]T(nil), c.items...)
}

func (c *collection[T]) find(id string) (T, bool) {
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}
