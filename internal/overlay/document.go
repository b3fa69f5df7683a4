package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	json "github.com/virtuald/go-ordered-json"
)

// Document is an order-preserving JSON object.
//
// Values are one of: nil, bool, string, json.Number, *Document, []any.
// Numbers keep their original text so an untouched 1.50 stays 1.50.
type Document struct {
	members []member
}

type member struct {
	key   string
	value any
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// ParseDocument parses data as a JSON object, keeping key order.
// Empty or whitespace-only input is an empty document.
func ParseDocument(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewDocument(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseOrderedObject()
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}

	obj, ok := v.(json.OrderedObject)
	if !ok {
		return nil, fmt.Errorf("top-level value is %s, not an object", kindOf(fromOrdered(v)))
	}

	return documentFrom(obj), nil
}

// MustParseDocument is ParseDocument for literals known to be valid.
func MustParseDocument(data string) *Document {
	doc, err := ParseDocument([]byte(data))
	if err != nil {
		panic(fmt.Sprintf("overlay: invalid document literal: %v", err))
	}
	return doc
}

// documentFrom converts a decoded object. A repeated key keeps the position
// of its first occurrence and the value of its last, as JSON readers do.
func documentFrom(obj json.OrderedObject) *Document {
	d := &Document{members: make([]member, 0, len(obj))}
	for _, m := range obj {
		v := fromOrdered(m.Value)
		if i := d.index(m.Key); i >= 0 {
			d.members[i].value = v
			continue
		}
		d.members = append(d.members, member{key: m.Key, value: v})
	}
	return d
}

func fromOrdered(v any) any {
	switch t := v.(type) {
	case json.OrderedObject:
		return documentFrom(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = fromOrdered(e)
		}
		return out
	default:
		return t
	}
}

// Len returns the number of keys.
func (d *Document) Len() int {
	return len(d.members)
}

// Keys returns the keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.members))
	for i, m := range d.members {
		keys[i] = m.key
	}
	return keys
}

func (d *Document) index(key string) int {
	for i, m := range d.members {
		if m.key == key {
			return i
		}
	}
	return -1
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	return d.index(key) >= 0
}

// Get returns the value stored at key.
func (d *Document) Get(key string) (any, bool) {
	if i := d.index(key); i >= 0 {
		return d.members[i].value, true
	}
	return nil, false
}

// GetString returns the string stored at key, or "" when absent or not a string.
func (d *Document) GetString(key string) string {
	v, _ := d.Get(key)
	s, _ := v.(string)
	return s
}

// Set stores value at key. An existing key keeps its position.
func (d *Document) Set(key string, value any) {
	v := normalize(value)
	if i := d.index(key); i >= 0 {
		d.members[i].value = v
		return
	}
	d.members = append(d.members, member{key: key, value: v})
}

// SetDefault stores value at key only when key is absent.
// Returns true when the value was stored.
func (d *Document) SetDefault(key string, value any) bool {
	if d.Has(key) {
		return false
	}
	d.Set(key, value)
	return true
}

// Object returns the nested object at key, creating an empty one when absent.
func (d *Document) Object(key string) (*Document, error) {
	v, ok := d.Get(key)
	if !ok {
		child := NewDocument()
		d.Set(key, child)
		return child, nil
	}

	child, isObj := v.(*Document)
	if !isObj {
		return nil, fmt.Errorf("key %q holds %s, not an object", key, kindOf(v))
	}
	return child, nil
}

// AddToSet appends each value to the array at key unless an equal element is
// already present. Existing elements keep their order. An absent key gets a
// new array. Returns true when anything was appended.
func (d *Document) AddToSet(key string, values ...any) (bool, error) {
	v, ok := d.Get(key)

	var arr []any
	if ok {
		existing, isArr := v.([]any)
		if !isArr {
			return false, fmt.Errorf("key %q holds %s, not an array", key, kindOf(v))
		}
		arr = existing
	}

	added := false
	for _, value := range values {
		nv := normalize(value)
		if containsValue(arr, nv) {
			continue
		}
		arr = append(arr, nv)
		added = true
	}

	if !ok || added {
		d.Set(key, arr)
	}
	return added, nil
}

// MergeDefaults copies every key of defaults that d lacks. When both sides
// hold objects the merge recurses; any other existing value wins.
func (d *Document) MergeDefaults(defaults *Document) {
	if defaults == nil {
		return
	}

	for _, m := range defaults.members {
		existing, ok := d.Get(m.key)
		if !ok {
			d.Set(m.key, cloneValue(m.value))
			continue
		}

		dst, dstObj := existing.(*Document)
		src, srcObj := m.value.(*Document)
		if dstObj && srcObj {
			dst.MergeDefaults(src)
		}
	}
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	out := &Document{members: make([]member, len(d.members))}
	for i, m := range d.members {
		out.members[i] = member{key: m.key, value: cloneValue(m.value)}
	}
	return out
}

// Bytes serializes the document with two-space indentation, no HTML escaping
// and exactly one trailing newline.
func (d *Document) Bytes() ([]byte, error) {
	var compact bytes.Buffer
	if err := writeValue(&compact, d); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// String returns the serialized document, or an error description.
func (d *Document) String() string {
	b, err := d.Bytes()
	if err != nil {
		return fmt.Sprintf("<invalid document: %v>", err)
	}
	return string(b)
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case *Document:
		buf.WriteByte('{')
		for i, m := range t.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeScalar(buf, m.key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, m.value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return writeScalar(buf, t)
	}
	return nil
}

func writeScalar(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// normalize converts Go values into the document's value set.
func normalize(v any) any {
	switch t := v.(type) {
	case nil, bool, string, json.Number, *Document:
		return t
	case int:
		return json.Number(strconv.Itoa(t))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case float64:
		return json.Number(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		doc := NewDocument()
		for _, k := range keys {
			doc.Set(k, t[k])
		}
		return doc
	case map[string]string:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		doc := NewDocument()
		for _, k := range keys {
			doc.Set(k, t[k])
		}
		return doc
	default:
		panic(fmt.Sprintf("overlay: unsupported value type %T", v))
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Document:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return t
	}
}

func containsValue(arr []any, v any) bool {
	for _, e := range arr {
		if valuesEqual(e, v) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b any) bool {
	switch at := a.(type) {
	case *Document, []any:
		var ab, bb bytes.Buffer
		if writeValue(&ab, at) != nil || writeValue(&bb, b) != nil {
			return false
		}
		return bytes.Equal(ab.Bytes(), bb.Bytes())
	default:
		return a == b
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case *Document:
		return "an object"
	case []any:
		return "an array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
