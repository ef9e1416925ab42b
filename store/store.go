package store

// ChangeListener is called when a store's data changes
type ChangeListener func()

// Stat represents a statistic to be displayed in the header
type Stat struct {
	Name  string
	Value string
	Order int
}

// listenerSet is the listener bookkeeping shared by the stores.
// Callers hold their own lock around add/remove and snapshot before notifying.
type listenerSet struct {
	listeners      map[int]ChangeListener
	nextListenerID int
}

func newListenerSet() listenerSet {
	return listenerSet{
		listeners:      make(map[int]ChangeListener),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
	}
}

func (ls *listenerSet) add(l ChangeListener) int {
	id := ls.nextListenerID
	ls.nextListenerID++
	ls.listeners[id] = l
	return id
}

func (ls *listenerSet) remove(id int) {
	delete(ls.listeners, id)
}

func (ls *listenerSet) snapshot() []ChangeListener {
	out := make([]ChangeListener, 0, len(ls.listeners))
	for _, l := range ls.listeners {
		out = append(out, l)
	}
	return out
}
