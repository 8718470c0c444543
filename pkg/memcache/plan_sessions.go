package memcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

// Slot is a specific (dayIndex, activityIndex) position within the held
// itinerary's activities. Zero-based on both axes.
type Slot struct {
	Day      int
	Activity int
}

func (s Slot) Key() string { return fmt.Sprintf("%d:%d", s.Day, s.Activity) }

// PlanSession owns the single Itinerary of one planning session. All access
// goes through its mutex; the itinerary value itself is treated as
// copy-on-write so a reader never observes a half-updated structure.
//
// The generation counter bumps on every full itinerary replacement. A patch
// or image completion computed against an older generation is stale and is
// rejected rather than applied.
type PlanSession struct {
	mu         sync.RWMutex
	id         string
	request    request_models.TripRequest
	itinerary  *response_models.Itinerary
	generation uint64
	regenBusy  map[Slot]bool
	imageSeq   map[Slot]uint64
	imageURL   map[Slot]string
	expiresAt  time.Time
}

func (s *PlanSession) ID() string { return s.id }

func (s *PlanSession) Request() request_models.TripRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.request
}

// SetItinerary installs a freshly generated itinerary, superseding whatever
// was held before. Per-slot markers and cached images refer to positions in
// the old plan, so they are discarded wholesale.
func (s *PlanSession) SetItinerary(it *response_models.Itinerary) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itinerary = it
	s.generation++
	s.regenBusy = make(map[Slot]bool)
	s.imageSeq = make(map[Slot]uint64)
	s.imageURL = make(map[Slot]string)
	return s.generation
}

// Snapshot returns a deep copy of the held itinerary and the generation it
// belongs to.
func (s *PlanSession) Snapshot() (*response_models.Itinerary, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itinerary.Clone(), s.generation
}

// ActivityAt reads the activity at slot plus the destination of its day.
func (s *PlanSession) ActivityAt(slot Slot) (response_models.Activity, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkSlot(slot); err != nil {
		return response_models.Activity{}, "", err
	}
	day := s.itinerary.DailyItineraries[slot.Day]
	return day.Activities[slot.Activity], day.Destination, nil
}

// ReplaceActivityDescription applies a regeneration result: clone the held
// itinerary, overwrite exactly one description, swap the clone in. The caller
// passes the generation its result was computed against; a mismatch means the
// itinerary was replaced mid-flight and the patch is refused.
func (s *PlanSession) ReplaceActivityDescription(generation uint64, slot Slot, description string) (*response_models.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return nil, utils.ErrMergeConflict
	}
	if err := s.checkSlot(slot); err != nil {
		return nil, err
	}

	patched := s.itinerary.Clone()
	patched.DailyItineraries[slot.Day].Activities[slot.Activity].Description = description
	s.itinerary = patched

	// The description changed, so any in-flight image for this slot is stale.
	s.imageSeq[slot]++
	delete(s.imageURL, slot)

	return patched.Clone(), nil
}

// TryBeginRegenerate marks slot as having a regeneration in flight. Returns
// false when the slot is already busy; advisory, not a hard lock.
func (s *PlanSession) TryBeginRegenerate(slot Slot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.regenBusy[slot] {
		return false
	}
	s.regenBusy[slot] = true
	return true
}

func (s *PlanSession) EndRegenerate(slot Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.regenBusy, slot)
}

// BeginImage registers a new image synthesis for slot and returns its token.
// Starting a new call supersedes any outstanding one: only the result carrying
// the latest token will ever be applied.
func (s *PlanSession) BeginImage(slot Slot) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imageSeq[slot]++
	return s.imageSeq[slot]
}

// CompleteImage applies an image URL to slot if token is still current.
// Returns false for stale completions, which the caller must discard.
func (s *PlanSession) CompleteImage(slot Slot, token uint64, url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imageSeq[slot] != token {
		return false
	}
	s.imageURL[slot] = url
	return true
}

// ImageURLs returns the synthesized images applied so far, keyed "day:activity".
func (s *PlanSession) ImageURLs() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.imageURL))
	for slot, url := range s.imageURL {
		out[slot.Key()] = url
	}
	return out
}

// checkSlot must be called with the mutex held.
func (s *PlanSession) checkSlot(slot Slot) error {
	if s.itinerary == nil {
		return utils.ErrSlotOutOfRange
	}
	if slot.Day < 0 || slot.Day >= len(s.itinerary.DailyItineraries) {
		return utils.ErrSlotOutOfRange
	}
	if slot.Activity < 0 || slot.Activity >= len(s.itinerary.DailyItineraries[slot.Day].Activities) {
		return utils.ErrSlotOutOfRange
	}
	return nil
}

// PlanSessionStore holds live planning sessions in memory. Nothing is ever
// written to disk or a database; an expired session simply reads as missing.
type PlanSessionStore interface {
	Create(req request_models.TripRequest, ttl time.Duration) *PlanSession
	Get(id string) (*PlanSession, bool)
	Delete(id string)
}

type PlanSessions struct {
	mu   sync.RWMutex
	data map[string]*PlanSession
}

func NewPlanSessions() *PlanSessions {
	return &PlanSessions{data: make(map[string]*PlanSession)}
}

func (ps *PlanSessions) Create(req request_models.TripRequest, ttl time.Duration) *PlanSession {
	session := &PlanSession{
		id:        uuid.New().String(),
		request:   req,
		regenBusy: make(map[Slot]bool),
		imageSeq:  make(map[Slot]uint64),
		imageURL:  make(map[Slot]string),
		expiresAt: time.Now().Add(ttl),
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.data[session.id] = session
	return session
}

func (ps *PlanSessions) Get(id string) (*PlanSession, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	session, ok := ps.data[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(session.expiresAt) {
		delete(ps.data, id) // cleanup expired
		return nil, false
	}
	return session, true
}

func (ps *PlanSessions) Delete(id string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	delete(ps.data, id)
}
