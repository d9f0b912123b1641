// Package table provides the single-table key-value store all entities
// live in. Every record is addressed by a composite partition+sort key
// and may carry a secondary-index key (gsi1pk/gsi1sk) for reverse
// lookups and an expiry instant for automatic retention cleanup.
package table

import (
	"context"
	"errors"
)

// MaxBatchOps caps the number of operations per batch-write call.
// Larger request sets are split into sequential chunks, each chunk
// written durably before the next is attempted.
const MaxBatchOps = 25

// ErrItemNotFound is returned by Get when no record exists at the key.
var ErrItemNotFound = errors.New("item not found")

// ErrInvalidDecodeTarget is returned when a query out argument is not a
// pointer to a slice.
var ErrInvalidDecodeTarget = errors.New("query result target must be a pointer to a slice")

// Key is the composite primary key of a record.
type Key struct {
	PK string `bson:"pk"`
	SK string `bson:"sk"`
}

// Table is the store adapter. Documents passed to Put and BatchWrite
// must carry bson "pk" and "sk" fields; out arguments are decoded the
// same way a mongo cursor would decode them (a pointer to a struct for
// Get, a pointer to a slice for the query methods).
//
// The store guarantees atomicity per single item and per chunk only;
// multi-record consistency is the caller's responsibility.
type Table interface {
	// Get loads the record at key into out, or returns ErrItemNotFound.
	Get(ctx context.Context, key Key, out any) error

	// Put writes doc, replacing any record with the same key.
	Put(ctx context.Context, doc any) error

	// Delete removes the record at key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key Key) error

	// Query loads every record in the partition, sorted by sort key.
	Query(ctx context.Context, pk string, out any) error

	// QueryPrefix loads the partition's records whose sort key starts
	// with skPrefix, sorted by sort key.
	QueryPrefix(ctx context.Context, pk, skPrefix string, out any) error

	// QueryIndex loads up to limit records by secondary-index partition
	// key (limit <= 0 means no limit).
	QueryIndex(ctx context.Context, gsi1pk string, limit int64, out any) error

	// BatchWrite applies the given puts and deletes in chunks of
	// MaxBatchOps. Chunks are applied sequentially; a failed chunk
	// aborts the remainder, leaving earlier chunks applied.
	BatchWrite(ctx context.Context, puts []any, deletes []Key) error
}
