package table

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryTable is an in-memory Table for local runs and tests. Records
// are stored as bson documents so encode/decode behavior matches the
// mongo backend.
type MemoryTable struct {
	mu    sync.RWMutex
	items map[Key]bson.Raw
}

// NewMemoryTable returns an empty in-memory table.
func NewMemoryTable() *MemoryTable {
	return &MemoryTable{items: make(map[Key]bson.Raw)}
}

func (t *MemoryTable) Get(ctx context.Context, key Key, out any) error {
	t.mu.RLock()
	raw, ok := t.items[key]
	t.mu.RUnlock()
	if !ok {
		return ErrItemNotFound
	}
	return bson.Unmarshal(raw, out)
}

func (t *MemoryTable) Put(ctx context.Context, doc any) error {
	raw, key, err := encodeRecord(doc)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.items[key] = raw
	t.mu.Unlock()
	return nil
}

func (t *MemoryTable) Delete(ctx context.Context, key Key) error {
	t.mu.Lock()
	delete(t.items, key)
	t.mu.Unlock()
	return nil
}

func (t *MemoryTable) Query(ctx context.Context, pk string, out any) error {
	return t.collect(pk, "", 0, out)
}

func (t *MemoryTable) QueryPrefix(ctx context.Context, pk, skPrefix string, out any) error {
	return t.collect(pk, skPrefix, 0, out)
}

func (t *MemoryTable) QueryIndex(ctx context.Context, gsi1pk string, limit int64, out any) error {
	t.mu.RLock()
	var matched []Key
	for key, raw := range t.items {
		if val, ok := raw.Lookup("gsi1pk").StringValueOK(); ok && val == gsi1pk {
			matched = append(matched, key)
		}
	}
	raws := t.sortedRaws(matched)
	t.mu.RUnlock()
	if limit > 0 && int64(len(raws)) > limit {
		raws = raws[:limit]
	}
	return decodeRecords(raws, out)
}

func (t *MemoryTable) BatchWrite(ctx context.Context, puts []any, deletes []Key) error {
	type op struct {
		key Key
		raw bson.Raw // nil means delete
	}
	ops := make([]op, 0, len(puts)+len(deletes))
	for _, doc := range puts {
		raw, key, err := encodeRecord(doc)
		if err != nil {
			return err
		}
		ops = append(ops, op{key: key, raw: raw})
	}
	for _, key := range deletes {
		ops = append(ops, op{key: key})
	}
	for _, batch := range chunk(ops, MaxBatchOps) {
		t.mu.Lock()
		for _, o := range batch {
			if o.raw == nil {
				delete(t.items, o.key)
			} else {
				t.items[o.key] = o.raw
			}
		}
		t.mu.Unlock()
	}
	return nil
}

// Len reports the number of stored records.
func (t *MemoryTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

func (t *MemoryTable) collect(pk, skPrefix string, limit int64, out any) error {
	t.mu.RLock()
	var matched []Key
	for key := range t.items {
		if key.PK == pk && (skPrefix == "" || strings.HasPrefix(key.SK, skPrefix)) {
			matched = append(matched, key)
		}
	}
	raws := t.sortedRaws(matched)
	t.mu.RUnlock()
	if limit > 0 && int64(len(raws)) > limit {
		raws = raws[:limit]
	}
	return decodeRecords(raws, out)
}

// sortedRaws returns copies of the matched records in sort-key order.
// Callers must hold at least the read lock.
func (t *MemoryTable) sortedRaws(keys []Key) []bson.Raw {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].PK != keys[j].PK {
			return keys[i].PK < keys[j].PK
		}
		return keys[i].SK < keys[j].SK
	})
	raws := make([]bson.Raw, 0, len(keys))
	for _, key := range keys {
		raws = append(raws, t.items[key])
	}
	return raws
}

func encodeRecord(doc any) (bson.Raw, Key, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, Key{}, err
	}
	key, err := keyOf(doc)
	if err != nil {
		return nil, Key{}, err
	}
	return raw, key, nil
}

// decodeRecords unmarshals raw documents into out, which must be a
// pointer to a slice, mirroring cursor.All.
func decodeRecords(raws []bson.Raw, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return ErrInvalidDecodeTarget
	}
	slice := v.Elem()
	elemType := slice.Type().Elem()
	result := reflect.MakeSlice(slice.Type(), 0, len(raws))
	for _, raw := range raws {
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	slice.Set(result)
	return nil
}
