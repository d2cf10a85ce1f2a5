package usecase

import (
	"errors"
	"sync"
	"time"

	"video-distributor/domain/model"
)

var ErrIncompleteContent = errors.New("generated content must cover every platform")

// Listener receives a snapshot after every successful mutation. It runs
// while the store lock is held and must not call back into the store.
type Listener func(snapshot *model.Session)

// SessionStore holds one Session. Every mutation copies the current value,
// changes the copy and swaps it in, so readers never see a partial update.
type SessionStore struct {
	mu       sync.RWMutex
	session  *model.Session
	listener Listener
}

func NewSessionStore(id string, listener Listener) *SessionStore {
	return &SessionStore{session: model.NewSession(id), listener: listener}
}

func (s *SessionStore) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.ID
}

// Snapshot returns a deep copy of the current session.
func (s *SessionStore) Snapshot() *model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

// Update applies fn to a copy of the session and replaces the stored value
// when fn succeeds. On error the stored session is untouched.
func (s *SessionStore) Update(fn func(next *model.Session) error) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.session.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now().UTC()
	s.session = next
	if s.listener != nil {
		s.listener(next.Clone())
	}
	return next.Clone(), nil
}

func (s *SessionStore) SetFile(file *model.SourceFile) (*model.Session, error) {
	return s.Update(func(next *model.Session) error {
		next.File = file
		return nil
	})
}

func (s *SessionStore) SetContext(text string) (*model.Session, error) {
	return s.Update(func(next *model.Session) error {
		next.Context = text
		return nil
	})
}

// ToggleSelection flips the selection of one platform and nothing else.
func (s *SessionStore) ToggleSelection(id model.PlatformID) (*model.Session, error) {
	return s.Update(func(next *model.Session) error {
		if _, ok := next.Selected[id]; !ok {
			return model.ErrUnknownPlatform
		}
		next.Selected[id] = !next.Selected[id]
		return nil
	})
}

func (s *SessionStore) ReplaceContent(id model.PlatformID, content model.GeneratedContent) (*model.Session, error) {
	return s.Update(func(next *model.Session) error {
		if _, ok := next.Content[id]; !ok {
			return model.ErrUnknownPlatform
		}
		if content.Tags == nil {
			content.Tags = []string{}
		}
		next.Content[id] = content.Clone()
		return nil
	})
}

// UpdateContent applies a field-level edit to one platform.
func (s *SessionStore) UpdateContent(id model.PlatformID, patch model.ContentPatch) (*model.Session, error) {
	return s.Update(func(next *model.Session) error {
		current, ok := next.Content[id]
		if !ok {
			return model.ErrUnknownPlatform
		}
		next.Content[id] = current.Apply(patch)
		return nil
	})
}

// ReplaceAllContent swaps in a full generation result. A mapping that does
// not cover exactly the registered platforms is rejected as a whole.
func (s *SessionStore) ReplaceAllContent(all map[model.PlatformID]model.GeneratedContent) (*model.Session, error) {
	return s.Update(func(next *model.Session) error {
		return replaceAllContent(next, all)
	})
}

func replaceAllContent(next *model.Session, all map[model.PlatformID]model.GeneratedContent) error {
	if len(all) != len(next.Content) {
		return ErrIncompleteContent
	}
	for id := range next.Content {
		if _, ok := all[id]; !ok {
			return ErrIncompleteContent
		}
	}
	for id, c := range all {
		if c.Tags == nil {
			c.Tags = []string{}
		}
		next.Content[id] = c.Clone()
	}
	return nil
}

var errBusy = errors.New("busy")

// BeginGenerating sets the generation flag. It returns false when the flag
// is already set.
func (s *SessionStore) BeginGenerating() bool {
	_, err := s.Update(func(next *model.Session) error {
		if next.IsGenerating {
			return errBusy
		}
		next.IsGenerating = true
		return nil
	})
	return err == nil
}

func (s *SessionStore) EndGenerating() {
	_, _ = s.Update(func(next *model.Session) error {
		next.IsGenerating = false
		return nil
	})
}

// BeginPublishing sets the publishing flag. It returns false when the flag
// is already set.
func (s *SessionStore) BeginPublishing() bool {
	_, err := s.Update(func(next *model.Session) error {
		if next.IsPublishing {
			return errBusy
		}
		next.IsPublishing = true
		return nil
	})
	return err == nil
}

func (s *SessionStore) EndPublishing() {
	_, _ = s.Update(func(next *model.Session) error {
		next.IsPublishing = false
		return nil
	})
}

// SetPublishStatus performs a direct status transition without checking
// its legality.
func (s *SessionStore) SetPublishStatus(id model.PlatformID, status model.PublishStatus) (*model.Session, error) {
	return s.Update(func(next *model.Session) error {
		if _, ok := next.Status[id]; !ok {
			return model.ErrUnknownPlatform
		}
		next.Status[id] = status
		return nil
	})
}
