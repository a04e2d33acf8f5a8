package store

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"
)

// Prefs is a scoped, failure-free view of a KV.
// Read failures look like missing keys; write failures are logged and dropped.
type Prefs struct {
	kv     KV
	scope  string
	logger *log.Logger
}

// NewPrefs returns Prefs over kv. Keys are prefixed with scope and a colon
// when scope is non-empty, so several players can share one database.
func NewPrefs(kv KV, scope string, logger *log.Logger) *Prefs {
	if kv == nil {
		kv = NewMemory()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Prefs{kv: kv, scope: scope, logger: logger}
}

func (p *Prefs) key(k string) string {
	if p.scope == "" {
		return k
	}
	return p.scope + ":" + k
}

// Get returns the stored value and whether it was present.
func (p *Prefs) Get(key string) (string, bool) {
	v, ok, err := p.kv.Get(p.key(key))
	if err != nil {
		p.logger.Warn("read failed", "key", p.key(key), "err", err)
		return "", false
	}
	return v, ok
}

// Set stores value under key.
func (p *Prefs) Set(key, value string) {
	if err := p.kv.Set(p.key(key), value); err != nil {
		p.logger.Warn("write failed", "key", p.key(key), "err", err)
	}
}

// Delete removes key.
func (p *Prefs) Delete(key string) {
	if err := p.kv.Delete(p.key(key)); err != nil {
		p.logger.Warn("delete failed", "key", p.key(key), "err", err)
	}
}

// Int returns the integer stored under key. Missing or unparseable values yield 0.
func (p *Prefs) Int(key string) int {
	v, ok := p.Get(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// SetInt stores n under key.
func (p *Prefs) SetInt(key string, n int) {
	p.Set(key, strconv.Itoa(n))
}

// Flag reports whether key holds "1".
func (p *Prefs) Flag(key string) bool {
	v, ok := p.Get(key)
	return ok && v == "1"
}

// SetFlag stores "1" under key, or removes it.
func (p *Prefs) SetFlag(key string, on bool) {
	if on {
		p.Set(key, "1")
		return
	}
	p.Delete(key)
}
