package receipt

import (
	"errors"
	"sort"
	"sync"
)

var ErrReceiptNotFound = errors.New("receipt not found")

// Archive keeps the receipts produced during the session, keyed by file name.
// A later receipt with the same name replaces the earlier one.
type Archive struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewArchive() *Archive {
	return &Archive{docs: make(map[string][]byte)}
}

func (a *Archive) Put(name string, doc []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.docs[name] = doc
}

func (a *Archive) Get(name string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	doc, ok := a.docs[name]
	if !ok {
		return nil, ErrReceiptNotFound
	}
	return doc, nil
}

func (a *Archive) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.docs))
	for name := range a.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
