package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"mentora-backend/internal/models"
)

// ErrBusy rejects a change while a request of the session is in flight.
var ErrBusy = errors.New("a previous request in this session is still processing")

// Session holds everything one browser session knows: the active feature,
// each feature's conversation, controller state, and stored artifacts.
// All access goes through methods so concurrent HTTP requests stay safe.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	transitionMu sync.Mutex

	mu            sync.Mutex
	lastAccessAt  time.Time
	activeFeature models.Feature
	histories     map[models.Feature][]models.Message
	states        map[models.Feature]models.ControllerState
	insights      map[models.Feature][]models.Insight
	lastErrors    map[models.Feature]*models.GenerationError
	quiz          *models.QuizArtifact
	conceptMap    *models.ConceptMapArtifact
}

func New() *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.New(),
		CreatedAt: now,
	}
	s.resetLocked(now)
	return s
}

func (s *Session) resetLocked(now time.Time) {
	s.lastAccessAt = now
	s.activeFeature = models.FeatureTutor
	s.histories = make(map[models.Feature][]models.Message)
	s.states = make(map[models.Feature]models.ControllerState)
	s.insights = make(map[models.Feature][]models.Insight)
	s.lastErrors = make(map[models.Feature]*models.GenerationError)
	s.quiz = nil
	s.conceptMap = nil
}

// Reset drops every history and artifact but keeps the session id.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(time.Now().UTC())
}

func (s *Session) Touch() {
	s.mu.Lock()
	s.lastAccessAt = time.Now().UTC()
	s.mu.Unlock()
}

func (s *Session) LastAccessAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccessAt
}

func (s *Session) ActiveFeature() models.Feature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeFeature
}

// SwitchFeature makes f active. Changing to a different feature clears f's
// conversation so it starts fresh. Stored quiz and concept map survive.
func (s *Session) SwitchFeature(f models.Feature) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeFeature == f {
		return false
	}
	s.activeFeature = f
	delete(s.histories, f)
	delete(s.insights, f)
	delete(s.lastErrors, f)
	return true
}

// SwitchFeatureIdle switches like SwitchFeature but refuses while any
// feature of the session is processing.
func (s *Session) SwitchFeatureIdle(f models.Feature) (bool, error) {
	var changed bool
	err := s.Transition(func() error {
		if s.Processing() {
			return ErrBusy
		}
		changed = s.SwitchFeature(f)
		return nil
	})
	return changed, err
}

func (s *Session) History(f models.Feature) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.histories[f]...)
}

// AppendExchange records one user request and the assistant's reply.
func (s *Session) AppendExchange(f models.Feature, user, assistant string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	s.histories[f] = append(s.histories[f],
		models.Message{Role: models.RoleUser, Content: user, CreatedAt: now},
		models.Message{Role: models.RoleAssistant, Content: assistant, CreatedAt: now},
	)
}

func (s *Session) ClearHistory(f models.Feature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, f)
}

// Transition runs fn while no other controller state change can interleave.
func (s *Session) Transition(fn func() error) error {
	s.transitionMu.Lock()
	defer s.transitionMu.Unlock()
	return fn()
}

func (s *Session) State(f models.Feature) models.ControllerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[f]; ok {
		return st
	}
	return models.StateIdle
}

// Processing reports whether any feature has a request in flight.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.states {
		if st == models.StateProcessing {
			return true
		}
	}
	return false
}

func (s *Session) SetState(f models.Feature, st models.ControllerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[f] = st
}

func (s *Session) SetInsights(f models.Feature, insights []models.Insight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(insights) == 0 {
		delete(s.insights, f)
		return
	}
	s.insights[f] = insights
}

func (s *Session) Insights(f models.Feature) []models.Insight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Insight(nil), s.insights[f]...)
}

func (s *Session) SetLastError(f models.Feature, err *models.GenerationError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.lastErrors, f)
		return
	}
	s.lastErrors[f] = err
}

func (s *Session) LastError(f models.Feature) *models.GenerationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErrors[f]
}

func (s *Session) Quiz() *models.QuizArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiz == nil {
		return nil
	}
	q := *s.quiz
	return &q
}

func (s *Session) SetQuiz(q *models.QuizArtifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiz = q
}

func (s *Session) ConceptMap() *models.ConceptMapArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conceptMap == nil {
		return nil
	}
	c := *s.conceptMap
	return &c
}

func (s *Session) SetConceptMap(c *models.ConceptMapArtifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conceptMap = c
}

func (s *Session) View() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	states := make(map[models.Feature]models.ControllerState, len(models.AllFeatures))
	for _, f := range models.AllFeatures {
		st, ok := s.states[f]
		if !ok {
			st = models.StateIdle
		}
		states[f] = st
	}

	v := models.SessionView{
		ID:            s.ID.String(),
		ActiveFeature: s.activeFeature,
		States:        states,
		CreatedAt:     s.CreatedAt,
		LastAccessAt:  s.lastAccessAt,
	}
	if s.quiz != nil {
		q := *s.quiz
		v.Quiz = &q
	}
	if s.conceptMap != nil {
		c := *s.conceptMap
		v.ConceptMap = &c
	}
	return v
}
