package session

import (
	"sync"
	"time"

	"github.com/rs/xid"

	"pdf_assembler/pdf"
)

// Operation labels shown while a session is busy
const (
	OpIngest = "Loading..."
	OpMerge  = "Merging..."
	OpSplit  = "Splitting..."
	OpUpdate = "Updating..."
	OpClose  = "Closing..."
)

// State is a point-in-time view of a session for the presentation layer
type State struct {
	ID        string         `json:"id"`
	Documents []DocumentInfo `json:"documents"`
	Count     int            `json:"count"`
	Version   uint64         `json:"version"`
	CanMerge  bool           `json:"can_merge"`
	CanSplit  bool           `json:"can_split"`
	Busy      bool           `json:"busy"`
	Operation string         `json:"operation,omitempty"`
}

// Session owns one DocumentSet and runs one operation at a time. Starting an
// ingest, merge, split or set update while another runs fails with ErrBusy.
// Set listeners may call State; they must not start operations.
type Session struct {
	ID string

	engine pdf.Engine
	set    *DocumentSet
	now    func() time.Time

	mu        sync.Mutex
	operation string
	lastUsed  time.Time
}

// New creates an empty session using engine
func New(engine pdf.Engine) *Session {
	return newSession(xid.New().String(), engine, time.Now)
}

func newSession(id string, engine pdf.Engine, now func() time.Time) *Session {
	return &Session{
		ID:       id,
		engine:   engine,
		set:      NewDocumentSet(engine),
		now:      now,
		lastUsed: now(),
	}
}

// Documents exposes the session's set for read access and subscriptions
func (s *Session) Documents() *DocumentSet {
	return s.set
}

// State returns the session's current contents and enablement rules
func (s *Session) State() State {
	s.mu.Lock()
	operation := s.operation
	s.mu.Unlock()

	docs := s.set.Describe()
	busy := operation != ""
	return State{
		ID:        s.ID,
		Documents: docs,
		Count:     len(docs),
		Version:   s.set.Version(),
		CanMerge:  len(docs) >= 2 && !busy,
		CanSplit:  len(docs) == 1 && !busy,
		Busy:      busy,
		Operation: operation,
	}
}

// Busy reports whether an operation is running
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.operation != ""
}

// Ingest loads files into the session
func (s *Session) Ingest(files []RawFile) (IngestResult, error) {
	if err := s.begin(OpIngest); err != nil {
		return IngestResult{}, err
	}
	defer s.end()

	return Ingest(s.engine, s.set, files), nil
}

// Remove removes the document at index
func (s *Session) Remove(index int) error {
	if err := s.begin(OpUpdate); err != nil {
		return err
	}
	defer s.end()

	return s.set.RemoveAt(index)
}

// Move reorders the document at oldIndex to newIndex
func (s *Session) Move(oldIndex, newIndex int) error {
	if err := s.begin(OpUpdate); err != nil {
		return err
	}
	defer s.end()

	return s.set.Move(oldIndex, newIndex)
}

// Merge concatenates all documents into one output
func (s *Session) Merge(filename string) (*Output, error) {
	if err := s.begin(OpMerge); err != nil {
		return nil, err
	}
	defer s.end()

	return Merge(s.engine, s.set, filename)
}

// Split extracts the pages selected by rangeText from the single document
func (s *Session) Split(rangeText, filename string) (*Output, error) {
	if err := s.begin(OpSplit); err != nil {
		return nil, err
	}
	defer s.end()

	return Split(s.engine, s.set, rangeText, filename)
}

// Close releases every document. It fails with ErrBusy while an operation runs.
func (s *Session) Close() error {
	if err := s.begin(OpClose); err != nil {
		return err
	}
	defer s.end()

	s.set.Clear()
	return nil
}

// closeIfIdle closes the session when it is not busy and was last used before cutoff.
// The check and the close happen under one guard, so no operation can start in between.
func (s *Session) closeIfIdle(cutoff time.Time) bool {
	s.mu.Lock()
	if s.operation != "" || !s.lastUsed.Before(cutoff) {
		s.mu.Unlock()
		return false
	}
	s.operation = OpClose
	s.mu.Unlock()
	defer s.end()

	s.set.Clear()
	return true
}

// IdleSince reports when the session was last used, and whether it is busy
func (s *Session) IdleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastUsed, s.operation != ""
}

func (s *Session) begin(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.operation != "" {
		return ErrBusy
	}
	s.operation = op
	s.lastUsed = s.now()
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.operation = ""
	s.lastUsed = s.now()
}
