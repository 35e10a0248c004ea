package join

import (
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"
)

// Constants for the key index.
const (
	indexLoadFactor     = 0.75 // load factor before the bucket array grows
	indexGrowthFactor   = 2    // growth factor on resize
	indexCapacityFactor = 1.3  // headroom applied to the estimated size
	keySeparator        = "\x1f"
)

// Key is a join key: canonical country and year.
type Key struct {
	Country string
	Year    int
}

// String encodes the key for hashing. The unit separator cannot appear in a
// cleaned country label.
func (k Key) String() string {
	return k.Country + keySeparator + strconv.Itoa(k.Year)
}

// Index maps join keys to row positions using xxhash buckets.
type Index struct {
	buckets    [][]indexEntry
	capacity   int
	size       int
	loadFactor float64
}

type indexEntry struct {
	key       string
	positions []int
}

// NewIndex creates an index sized for roughly estimatedSize keys.
func NewIndex(estimatedSize int) *Index {
	capacity := nextPowerOfTwo(int(float64(estimatedSize) * indexCapacityFactor))
	return &Index{
		buckets:    make([][]indexEntry, capacity),
		capacity:   capacity,
		loadFactor: indexLoadFactor,
	}
}

// Put records that key occurs at position.
func (ix *Index) Put(key Key, position int) {
	encoded := key.String()
	b := ix.bucket(encoded, ix.capacity)

	for i := range ix.buckets[b] {
		if ix.buckets[b][i].key == encoded {
			ix.buckets[b][i].positions = append(ix.buckets[b][i].positions, position)
			return
		}
	}

	ix.buckets[b] = append(ix.buckets[b], indexEntry{key: encoded, positions: []int{position}})
	ix.size++

	if float64(ix.size) > float64(ix.capacity)*ix.loadFactor {
		ix.resize()
	}
}

// Get returns the positions recorded for key, in insertion order.
func (ix *Index) Get(key Key) ([]int, bool) {
	encoded := key.String()
	for _, entry := range ix.buckets[ix.bucket(encoded, ix.capacity)] {
		if entry.key == encoded {
			return entry.positions, true
		}
	}
	return nil, false
}

// Len returns the number of distinct keys.
func (ix *Index) Len() int {
	return ix.size
}

func (ix *Index) bucket(encoded string, capacity int) int {
	//nolint:gosec // capacity is a positive power of two
	return int(xxhash.Sum64String(encoded) & uint64(capacity-1))
}

// resize doubles the capacity and rehashes all entries.
func (ix *Index) resize() {
	newCapacity := ix.capacity * indexGrowthFactor
	newBuckets := make([][]indexEntry, newCapacity)

	for _, bucket := range ix.buckets {
		for _, entry := range bucket {
			b := ix.bucket(entry.key, newCapacity)
			newBuckets[b] = append(newBuckets[b], entry)
		}
	}

	ix.buckets = newBuckets
	ix.capacity = newCapacity
}

// nextPowerOfTwo returns the next power of two >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
