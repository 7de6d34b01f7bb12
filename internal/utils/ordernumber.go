package utils

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// OrderCounter hands out year-scoped order numbers of the form
// P<year><seq>, with the sequence zero-padded to three digits
// (P2025001, P2025002, ... P2025999, P20251000). The counter is guarded
// by a mutex; uniqueness is additionally enforced by the database's
// unique constraint on order_number.
type OrderCounter struct {
	mu   sync.Mutex
	year int
	next int
}

// NewOrderCounter returns a counter starting at 1 for the current year.
func NewOrderCounter() *OrderCounter {
	return &OrderCounter{year: time.Now().Year(), next: 1}
}

// Seed positions the counter after the highest existing order number for
// the current year. Order numbers from other years and malformed entries
// are ignored.
func (c *OrderCounter) Seed(existing []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := fmt.Sprintf("P%d", c.year)
	maxSeq := 0
	for _, num := range existing {
		if !strings.HasPrefix(num, prefix) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(num, prefix))
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	if maxSeq >= c.next {
		c.next = maxSeq + 1
	}
}

// Next returns the next order number and advances the counter. When the
// calendar year rolls over the sequence restarts at 1.
func (c *OrderCounter) Next() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	year := time.Now().Year()
	if year != c.year {
		c.year = year
		c.next = 1
	}

	num := fmt.Sprintf("P%d%03d", c.year, c.next)
	c.next++
	return num
}
