// Package storage provides the fault-tolerant key-value adapter every other
// component persists through. The store has no multi-key transactions; each
// Set is one atomic value write, and cross-collection consistency is handled
// upstream by the event queue and the posting service.
package storage

import (
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/mwumpini/WIP-HMS-sub001/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Adapter serializes values to JSON and shields callers from storage
// failures: reads never fail (the caller keeps its default) and writes report
// success as a boolean after one recovery attempt.
type Adapter struct {
	backend Backend
}

func NewAdapter(backend Backend) *Adapter {
	return &Adapter{backend: backend}
}

// Get unmarshals the value stored at key into out and reports whether out was
// populated. Missing keys are normal. A value that fails to parse is treated
// as absent but deliberately left in place for forensic inspection.
func (a *Adapter) Get(key string, out interface{}) bool {
	raw, err := a.backend.Get(key)
	if err != nil {
		if err != ErrKeyNotFound {
			log.L.WithError(err).WithField("key", key).Warn("storage read failed, using default")
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.L.WithError(err).WithField("key", key).Warn("corrupt value, using default (key kept for inspection)")
		return false
	}

	return true
}

// Set serializes value and writes it under key. On a capacity failure it
// prunes disposable backup artifacts and retries exactly once. A false return
// means the value is NOT persisted; callers must surface that as a warning,
// not a crash.
func (a *Adapter) Set(key string, value interface{}) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		log.L.WithError(err).WithField("key", key).Error("value not serializable")
		return false
	}

	err = a.backend.Put(key, raw)
	if err == nil {
		return true
	}

	log.L.WithError(err).WithField("key", key).Warn("storage write failed, pruning disposable keys and retrying")
	a.pruneDisposable()

	if err := a.backend.Put(key, raw); err != nil {
		log.L.WithError(err).WithField("key", key).Error("storage write failed after recovery attempt")
		return false
	}

	return true
}

// Remove deletes key. Removing an absent key is a successful no-op.
func (a *Adapter) Remove(key string) bool {
	if err := a.backend.Delete(key); err != nil {
		log.L.WithError(err).WithField("key", key).Warn("storage delete failed")
		return false
	}
	return true
}

// Keys lists every key currently present in the namespace.
func (a *Adapter) Keys() []string {
	keys, err := a.backend.Keys()
	if err != nil {
		log.L.WithError(err).Warn("storage key listing failed")
		return nil
	}
	return keys
}

func (a *Adapter) pruneDisposable() {
	keys, err := a.backend.Keys()
	if err != nil {
		log.L.WithError(err).Warn("cannot list keys for quota recovery")
		return
	}

	for _, key := range keys {
		if !strings.HasPrefix(key, DisposablePrefix) {
			continue
		}
		if err := a.backend.Delete(key); err != nil {
			log.L.WithError(err).WithField("key", key).Warn("failed pruning disposable key")
			continue
		}
		log.L.WithField("key", key).Info("pruned disposable backup artifact")
	}
}
