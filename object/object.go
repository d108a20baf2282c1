// Package object holds the ordered attribute maps that back a manifest
// record before it is serialized onto a single line.
package object

type IterateActionType = int8

const (
	IterateActionContinue IterateActionType = iota
	IterateActionBreak
)

type Object struct {
	*SliceMap
}

func NewItem(key string, value any) Item {
	return Item{key, value}
}

func NewObject() Object {
	return Object{
		SliceMap: NewSliceMap(),
	}
}

func NewObjectWithData(items []Item) Object {
	o := NewObject()
	for _, item := range items {
		o.Set(item.key, item.data)
	}
	return o
}

func (o Object) IsEmpty() bool {
	if o.SliceMap == nil || o.sl == nil {
		return true
	}
	return o.Size() == 0
}

func (o Object) GetString(key string) string {
	if o.SliceMap == nil {
		return ""
	}
	if value, ok := o.Get(key); ok {
		if v, ok := value.(string); ok {
			return v
		}
	}
	return ""
}

type ApplyFunc = func(key string, val any) IterateActionType
type FilterFunc = func(key string, val any) bool

// ForeachWithFilter visits items in insertion order, skipping nil values and
// keys the filter rejects.
func (o Object) ForeachWithFilter(apply ApplyFunc, filter FilterFunc) {
	if o.IsEmpty() {
		return
	}
	for _, item := range o.Items() {
		if item.data == nil {
			continue
		}
		if !filter(item.key, item.data) {
			continue
		}
		if apply(item.key, item.data) == IterateActionBreak {
			break
		}
	}
}
