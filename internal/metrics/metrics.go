// Package metrics provides lightweight, lock-free counters for tracking
// what a t9pad run decoded.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a t9pad run.
// A nil Collector is safe to use; every method is then a no-op.
type Collector struct {
	decodesTotal   atomic.Int64
	decodeFailures atomic.Int64
	keysProcessed  atomic.Int64
	charsEmitted   atomic.Int64
	layoutReloads  atomic.Int64
	errorsTotal    atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastReload   time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Decode metrics ───────────────────────────────────────────────────

// DecodeSucceeded records a successful decode of keys input runes into
// chars output runes.
func (c *Collector) DecodeSucceeded(keys, chars int) {
	if c == nil {
		return
	}
	c.decodesTotal.Add(1)
	c.keysProcessed.Add(int64(keys))
	c.charsEmitted.Add(int64(chars))
}

// DecodeFailed records a rejected input sequence.  msg is kept as the
// last error.
func (c *Collector) DecodeFailed(msg string) {
	if c == nil {
		return
	}
	c.decodesTotal.Add(1)
	c.decodeFailures.Add(1)
	c.RecordError(msg)
}

// Decodes returns the number of decode attempts, failed ones included.
func (c *Collector) Decodes() int64 {
	if c == nil {
		return 0
	}
	return c.decodesTotal.Load()
}

// Failures returns the number of rejected sequences.
func (c *Collector) Failures() int64 {
	if c == nil {
		return 0
	}
	return c.decodeFailures.Load()
}

// KeysProcessed returns the total input runes of successful decodes.
func (c *Collector) KeysProcessed() int64 {
	if c == nil {
		return 0
	}
	return c.keysProcessed.Load()
}

// CharsEmitted returns the total decoded runes.
func (c *Collector) CharsEmitted() int64 {
	if c == nil {
		return 0
	}
	return c.charsEmitted.Load()
}

// ── Layout metrics ───────────────────────────────────────────────────

// LayoutReloaded records a successful layout hot-reload.
func (c *Collector) LayoutReloaded() {
	if c == nil {
		return
	}
	c.layoutReloads.Add(1)
	c.mu.Lock()
	c.lastReload = time.Now()
	c.mu.Unlock()
}

// LayoutReloads returns the number of layout hot-reloads.
func (c *Collector) LayoutReloads() int64 {
	if c == nil {
		return 0
	}
	return c.layoutReloads.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	DecodesTotal     int64  `json:"decodes_total"`
	DecodeFailures   int64  `json:"decode_failures"`
	KeysProcessed    int64  `json:"keys_processed"`
	CharsEmitted     int64  `json:"chars_emitted"`
	LayoutReloads    int64  `json:"layout_reloads"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastReload       string `json:"last_reload,omitempty"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:         time.Since(c.startTime).Truncate(time.Second).String(),
		DecodesTotal:   c.decodesTotal.Load(),
		DecodeFailures: c.decodeFailures.Load(),
		KeysProcessed:  c.keysProcessed.Load(),
		CharsEmitted:   c.charsEmitted.Load(),
		LayoutReloads:  c.layoutReloads.Load(),
		ErrorsTotal:    c.errorsTotal.Load(),
	}
	if !c.lastReload.IsZero() {
		s.LastReload = c.lastReload.Format(time.RFC3339)
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
