package value

// Member is one key/value entry of an object.
type Member struct {
	Key   string
	Value Value
}

// Map is the ordered string-keyed object representation. Iteration
// follows insertion order; writing an existing key overwrites its value
// in place, keeping the original position.
type Map struct {
	entries []Member
	index   map[string]int
}

func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.entries[i].Value, true
}

// Set inserts or overwrites. Last write wins.
func (m *Map) Set(key string, v Value) {
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Member{Key: key, Value: v})
}

// Entries exposes the members in insertion order. The slice belongs to
// the map; callers must not modify it.
func (m *Map) Entries() []Member {
	if m == nil {
		return nil
	}
	return m.entries
}

func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}
