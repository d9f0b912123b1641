package table

// chunk splits ops into groups of at most size elements, preserving
// order.
func chunk[T any](ops []T, size int) [][]T {
	var chunks [][]T
	for i := 0; i < len(ops); i += size {
		end := i + size
		if end > len(ops) {
			end = len(ops)
		}
		chunks = append(chunks, ops[i:end])
	}
	return chunks
}
