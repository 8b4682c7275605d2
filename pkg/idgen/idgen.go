// Package idgen hands out human-readable sequential identifiers such as
// ORD-1001. Counters only move forward, so ids are never reused even when
// records are removed.
package idgen

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

const (
	OrderPrefix  = "ORD"
	SamplePrefix = "SMP"

	// Base is added to every counter value; the first id of a prefix is Base+1.
	Base = 1000
)

type Generator interface {
	Next(ctx context.Context, prefix string) (string, error)
}

func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s-%d", prefix, Base+n)
}

// Number returns the counter part of an id such as ORD-1001, or 0 when id
// has no numeric suffix.
func Number(id string) int64 {
	n, err := strconv.ParseInt(id[strings.LastIndexByte(id, '-')+1:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Sequence is an in-process Generator with one counter per prefix.
type Sequence struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewSequence() *Sequence {
	return &Sequence{counters: make(map[string]int64)}
}

func (s *Sequence) Next(_ context.Context, prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[prefix]++
	return Format(prefix, s.counters[prefix]), nil
}
