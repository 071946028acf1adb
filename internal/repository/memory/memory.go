// Package memory holds in-memory repository implementations backing the
// "memory" database driver. State is lost on restart, which is acceptable
// for demo deployments only.
package memory

import "sort"

func sortByIDDesc[T any](items []*T, id func(*T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) > id(items[j]) })
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return []*T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
