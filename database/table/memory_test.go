package table

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type testRecord struct {
	PK     string `bson:"pk"`
	SK     string `bson:"sk"`
	GSI1PK string `bson:"gsi1pk,omitempty"`
	GSI1SK string `bson:"gsi1sk,omitempty"`
	Value  string `bson:"value"`
}

func TestMemoryTablePutGetDelete(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemoryTable()

	record := testRecord{PK: "CUSTOMER#1", SK: "PROFILE", Value: "asha"}
	if err := tbl.Put(ctx, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got testRecord
	if err := tbl.Get(ctx, Key{PK: "CUSTOMER#1", SK: "PROFILE"}, &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Value != "asha" {
		t.Errorf("got value %q, want %q", got.Value, "asha")
	}

	if err := tbl.Delete(ctx, Key{PK: "CUSTOMER#1", SK: "PROFILE"}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := tbl.Get(ctx, Key{PK: "CUSTOMER#1", SK: "PROFILE"}, &got); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Get after delete returned %v, want ErrItemNotFound", err)
	}

	// Deleting an absent key is not an error.
	if err := tbl.Delete(ctx, Key{PK: "nope", SK: "nope"}); err != nil {
		t.Errorf("Delete of absent key returned %v", err)
	}
}

func TestMemoryTablePutRequiresKey(t *testing.T) {
	tbl := NewMemoryTable()
	if err := tbl.Put(context.Background(), testRecord{Value: "no key"}); err == nil {
		t.Error("Put without pk/sk should fail")
	}
}

func TestMemoryTableQueryPrefix(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemoryTable()

	records := []testRecord{
		{PK: "BILL#1", SK: "ITEM#c", Value: "third"},
		{PK: "BILL#1", SK: "ITEM#a", Value: "first"},
		{PK: "BILL#1", SK: "ITEM#b", Value: "second"},
		{PK: "BILL#1", SK: "OTHER", Value: "not an item"},
		{PK: "BILL#2", SK: "ITEM#a", Value: "other bill"},
	}
	for _, record := range records {
		if err := tbl.Put(ctx, record); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	var got []testRecord
	if err := tbl.QueryPrefix(ctx, "BILL#1", "ITEM#", &got); err != nil {
		t.Fatalf("QueryPrefix failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Value != want {
			t.Errorf("record %d value = %q, want %q (sort-key order)", i, got[i].Value, want)
		}
	}

	var all []testRecord
	if err := tbl.Query(ctx, "BILL#1", &all); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Query returned %d records, want 4", len(all))
	}
}

func TestMemoryTableQueryPrefixIsLiteral(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemoryTable()

	// Prefix characters carry no pattern semantics: "ITEM." must not
	// match "ITEMX".
	for _, sk := range []string{"ITEM.a", "ITEMXa"} {
		if err := tbl.Put(ctx, testRecord{PK: "BILL#1", SK: sk, Value: sk}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	var got []testRecord
	if err := tbl.QueryPrefix(ctx, "BILL#1", "ITEM.", &got); err != nil {
		t.Fatalf("QueryPrefix failed: %v", err)
	}
	if len(got) != 1 || got[0].SK != "ITEM.a" {
		t.Errorf("QueryPrefix matched %+v, want only ITEM.a", got)
	}
}

func TestMemoryTableQueryIndex(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemoryTable()

	for i := 0; i < 3; i++ {
		record := testRecord{
			PK:     fmt.Sprintf("CUSTOMER#%d", i),
			SK:     "BILL#x",
			GSI1PK: "BILL#x",
			GSI1SK: "SUMMARY",
			Value:  fmt.Sprintf("v%d", i),
		}
		if err := tbl.Put(ctx, record); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	var got []testRecord
	if err := tbl.QueryIndex(ctx, "BILL#x", 0, &got); err != nil {
		t.Fatalf("QueryIndex failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d records, want 3", len(got))
	}

	var limited []testRecord
	if err := tbl.QueryIndex(ctx, "BILL#x", 1, &limited); err != nil {
		t.Fatalf("QueryIndex with limit failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("got %d records with limit 1, want 1", len(limited))
	}
}

func TestMemoryTableBatchWrite(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemoryTable()

	// Well past MaxBatchOps so the chunked path is exercised.
	var puts []any
	for i := 0; i < 60; i++ {
		puts = append(puts, testRecord{
			PK:    "BILL#big",
			SK:    fmt.Sprintf("ITEM#%03d", i),
			Value: fmt.Sprintf("item %d", i),
		})
	}
	if err := tbl.BatchWrite(ctx, puts, nil); err != nil {
		t.Fatalf("BatchWrite failed: %v", err)
	}
	if tbl.Len() != 60 {
		t.Fatalf("table has %d records after batch put, want 60", tbl.Len())
	}

	var deletes []Key
	for i := 0; i < 60; i++ {
		deletes = append(deletes, Key{PK: "BILL#big", SK: fmt.Sprintf("ITEM#%03d", i)})
	}
	if err := tbl.BatchWrite(ctx, nil, deletes); err != nil {
		t.Fatalf("BatchWrite deletes failed: %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("table has %d records after batch delete, want 0", tbl.Len())
	}
}

func TestMemoryTableDecodeTarget(t *testing.T) {
	tbl := NewMemoryTable()
	var notASlice testRecord
	if err := tbl.Query(context.Background(), "pk", &notASlice); !errors.Is(err, ErrInvalidDecodeTarget) {
		t.Errorf("Query into non-slice returned %v, want ErrInvalidDecodeTarget", err)
	}
}

func TestChunk(t *testing.T) {
	ops := make([]int, 60)
	chunks := chunk(ops, MaxBatchOps)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 25 || len(chunks[1]) != 25 || len(chunks[2]) != 10 {
		t.Errorf("chunk sizes = %d/%d/%d, want 25/25/10",
			len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
	if chunks := chunk([]int{}, MaxBatchOps); len(chunks) != 0 {
		t.Errorf("empty input produced %d chunks, want 0", len(chunks))
	}
}
