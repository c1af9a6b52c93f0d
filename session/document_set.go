package session

import (
	"fmt"
	"sync"

	"pdf_assembler/pdf"
)

// Document is one loaded PDF. The set that holds it owns its handle.
type Document struct {
	Name   string
	Handle pdf.Handle
}

// DocumentInfo describes a document for presentation
type DocumentInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Pages int    `json:"pages"`
}

// Listener is called after every mutation with the new version and contents
type Listener func(version uint64, docs []Document)

type subscription struct {
	id int
	fn Listener
}

// DocumentSet is an ordered collection of loaded documents.
// Order is insertion order unless changed by Move. Mutations are serialized
// by an internal lock; listeners run after the lock is released, in
// subscription order.
type DocumentSet struct {
	engine pdf.Engine

	mu            sync.RWMutex
	docs          []Document
	version       uint64
	subscriptions []subscription
	nextID        int
}

// NewDocumentSet creates an empty set whose handles are released through engine
func NewDocumentSet(engine pdf.Engine) *DocumentSet {
	return &DocumentSet{engine: engine}
}

// Append adds doc to the end of the set
func (s *DocumentSet) Append(doc Document) error {
	return s.mutate(func() error {
		for _, d := range s.docs {
			if d.Handle == doc.Handle {
				return fmt.Errorf("append %q: %w", doc.Name, ErrDuplicateHandle)
			}
		}
		s.docs = append(s.docs, doc)
		return nil
	})
}

// RemoveAt removes the document at index, shifting later documents down, and
// releases its handle. The set is unchanged when index is out of range.
func (s *DocumentSet) RemoveAt(index int) error {
	return s.mutate(func() error {
		if err := s.checkIndexLocked(index); err != nil {
			return fmt.Errorf("remove: %w", err)
		}
		removed := s.docs[index]
		s.docs = append(s.docs[:index], s.docs[index+1:]...)
		s.engine.Release(removed.Handle)
		return nil
	})
}

// Move relocates the document at oldIndex to newIndex. Documents between the
// two positions shift by one to fill the gap.
func (s *DocumentSet) Move(oldIndex, newIndex int) error {
	return s.mutate(func() error {
		if err := s.checkIndexLocked(oldIndex); err != nil {
			return fmt.Errorf("move from: %w", err)
		}
		if err := s.checkIndexLocked(newIndex); err != nil {
			return fmt.Errorf("move to: %w", err)
		}

		moved := s.docs[oldIndex]
		if oldIndex < newIndex {
			copy(s.docs[oldIndex:newIndex], s.docs[oldIndex+1:newIndex+1])
		} else {
			copy(s.docs[newIndex+1:oldIndex+1], s.docs[newIndex:oldIndex])
		}
		s.docs[newIndex] = moved
		return nil
	})
}

// Clear releases every document and empties the set
func (s *DocumentSet) Clear() {
	s.mutate(func() error {
		for _, d := range s.docs {
			s.engine.Release(d.Handle)
		}
		s.docs = nil
		return nil
	})
}

// Count returns the number of documents
func (s *DocumentSet) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.docs)
}

// At returns the document at index
func (s *DocumentSet) At(index int) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkIndexLocked(index); err != nil {
		return Document{}, err
	}
	return s.docs[index], nil
}

// Documents returns a copy of the documents in order
func (s *DocumentSet) Documents() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

// Version counts successful mutations
func (s *DocumentSet) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

// Describe returns the documents with their current page counts.
// Page counts are read from the engine on every call.
func (s *DocumentSet) Describe() []DocumentInfo {
	docs := s.Documents()

	infos := make([]DocumentInfo, len(docs))
	for i, d := range docs {
		pages, err := s.engine.PageCount(d.Handle)
		if err != nil {
			pages = 0
		}
		infos[i] = DocumentInfo{Index: i, Name: d.Name, Pages: pages}
	}
	return infos
}

// Subscribe registers fn to run after every mutation. The returned func removes it.
func (s *DocumentSet) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subscriptions = append(s.subscriptions, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, sub := range s.subscriptions {
			if sub.id == id {
				s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// mutate runs fn under the write lock and notifies listeners when it succeeds
func (s *DocumentSet) mutate(fn func() error) error {
	s.mu.Lock()
	if err := fn(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.version++
	version := s.version
	docs := s.snapshotLocked()
	listeners := make([]Listener, len(s.subscriptions))
	for i, sub := range s.subscriptions {
		listeners[i] = sub.fn
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(version, docs)
	}
	return nil
}

func (s *DocumentSet) checkIndexLocked(index int) error {
	if index < 0 || index >= len(s.docs) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(s.docs))
	}
	return nil
}

func (s *DocumentSet) snapshotLocked() []Document {
	docs := make([]Document, len(s.docs))
	copy(docs, s.docs)
	return docs
}
