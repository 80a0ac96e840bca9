package compute

// Counter counts occurrences of a categorical value observed during a
// scan. Absent and null observations share a single no-value bucket.
// Incrementing is the only mutation; counters are diagnostic, they never
// drive control flow.
type Counter[T comparable] struct {
	counts  map[T]int
	missing int
}

// NewCounter returns a new, initialized Counter
func NewCounter[T comparable]() *Counter[T] {
	return &Counter[T]{counts: make(map[T]int)}
}

// Add registers one observation. nil lands in the shared no-value bucket.
func (c *Counter[T]) Add(value *T) {
	if value == nil {
		c.missing++
		return
	}
	c.counts[*value]++
}

// Count returns the number of observations of value.
func (c *Counter[T]) Count(value T) int {
	return c.counts[value]
}

// Missing returns the size of the no-value bucket.
func (c *Counter[T]) Missing() int {
	return c.missing
}

// Counts returns the live value buckets, for read-out after a scan.
func (c *Counter[T]) Counts() map[T]int {
	return c.counts
}

// Total returns the number of observations, no-values included.
func (c *Counter[T]) Total() int {
	total := c.missing
	for _, n := range c.counts {
		total += n
	}
	return total
}
