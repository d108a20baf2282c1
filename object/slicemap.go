package object

type mapItem struct {
	data any
	idx  int
}

// Item is a single key/value pair of an ordered map.
type Item struct {
	key  string
	data any
}

// SliceMap is a map that remembers insertion order. Records in a project
// manifest are written attribute by attribute, so order is significant.
type SliceMap struct {
	mp map[string]*mapItem
	sl []*Item
}

func NewSliceMap() *SliceMap {
	return &SliceMap{
		mp: make(map[string]*mapItem),
		sl: make([]*Item, 0),
	}
}

func (m *SliceMap) Get(key string) (any, bool) {
	v, found := m.mp[key]
	if found {
		return v.data, true
	}
	return nil, false
}

// Set replaces the value in place when key exists, keeping its position.
func (m *SliceMap) Set(key string, v any) {
	old, found := m.mp[key]
	if found {
		old.data = v
		m.sl[old.idx] = &Item{key: key, data: v}
		return
	}
	m.sl = append(m.sl, &Item{key: key, data: v})
	m.mp[key] = &mapItem{
		data: v,
		idx:  len(m.sl) - 1,
	}
}

func (m *SliceMap) Size() int {
	return len(m.sl)
}

func (m *SliceMap) Items() []*Item {
	return m.sl
}
