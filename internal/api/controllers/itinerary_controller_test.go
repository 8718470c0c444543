package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/pkg/memcache"
	"voyago/pkg/middleware"
	"voyago/pkg/utils"
)

type fakeItineraryService struct {
	generatePlan func(ctx context.Context, req request_models.TripRequest) (*memcache.PlanSession, *response_models.Itinerary, error)
	currentPlan  func(sessionID string) (*response_models.CurrentPlanResponse, error)
}

func (f *fakeItineraryService) GeneratePlan(ctx context.Context, req request_models.TripRequest) (*memcache.PlanSession, *response_models.Itinerary, error) {
	return f.generatePlan(ctx, req)
}

func (f *fakeItineraryService) CurrentPlan(sessionID string) (*response_models.CurrentPlanResponse, error) {
	return f.currentPlan(sessionID)
}

type fakeRegenerateService struct {
	regenerateActivity func(ctx context.Context, session *memcache.PlanSession, slot memcache.Slot) (*response_models.RegenerateResponse, error)
}

func (f *fakeRegenerateService) RegenerateActivity(ctx context.Context, session *memcache.PlanSession, slot memcache.Slot) (*response_models.RegenerateResponse, error) {
	return f.regenerateActivity(ctx, session, slot)
}

func (f *fakeRegenerateService) Regenerate(ctx context.Context, location, activity, itineraryContext, budget, interests string) (*response_models.RegenerationResult, error) {
	return nil, nil
}

type fakeImageService struct {
	synthesizeActivityImage func(ctx context.Context, session *memcache.PlanSession, slot memcache.Slot) (*response_models.ImageResult, error)
}

func (f *fakeImageService) SynthesizeActivityImage(ctx context.Context, session *memcache.PlanSession, slot memcache.Slot) (*response_models.ImageResult, error) {
	return f.synthesizeActivityImage(ctx, session, slot)
}

func (f *fakeImageService) Synthesize(ctx context.Context, description, location string) (*response_models.ImageResult, error) {
	return nil, nil
}

// newTestRouter wires the controller onto the real route layout, including
// the session middleware, so tests go through the same path a client would.
func newTestRouter(t *testing.T, ctrl *ItineraryController) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/itineraries", ctrl.GeneratePlanHandler)

	session := api.Group("/itineraries", middleware.SessionAuthMiddleware())
	session.GET("/current", ctrl.CurrentPlanHandler)
	session.POST("/activities/regenerate", ctrl.RegenerateActivityHandler)
	session.POST("/activities/image", ctrl.ActivityImageHandler)
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// TestGeneratePlanHandler verifies the generate endpoint returns the
// itinerary plus a session token that validates back to the held session.
func TestGeneratePlanHandler(t *testing.T) {
	sessions := memcache.NewPlanSessions()
	itSvc := &fakeItineraryService{
		generatePlan: func(ctx context.Context, req request_models.TripRequest) (*memcache.PlanSession, *response_models.Itinerary, error) {
			session := sessions.Create(req, time.Hour)
			it := &response_models.Itinerary{
				DailyItineraries: []response_models.DayPlan{
					{Day: 1, Destination: "Paris, France", Activities: []response_models.Activity{{Description: "Visit the Louvre"}}},
				},
			}
			session.SetItinerary(it)
			return session, it, nil
		},
	}
	ctrl := NewItineraryController(itSvc, &fakeRegenerateService{}, &fakeImageService{}, sessions, time.Hour)
	router := newTestRouter(t, ctrl)

	body := `{"destinations":[{"name":"Paris, France","durationDays":1}],"numberOfTravelers":2,"budget":"Moderate"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var plan response_models.PlanResponse
	resp := decodeResponse(t, rec)
	raw, _ := json.Marshal(resp.Data)
	if err := json.Unmarshal(raw, &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if plan.SessionToken == "" {
		t.Fatal("missing session token")
	}
	claims, err := utils.ValidateSessionToken(plan.SessionToken)
	if err != nil {
		t.Fatalf("returned token does not validate: %v", err)
	}
	if _, ok := sessions.Get(claims.SessionID); !ok {
		t.Fatal("token does not address a held session")
	}
	if len(plan.Itinerary.DailyItineraries) != 1 {
		t.Fatalf("itinerary days: %d", len(plan.Itinerary.DailyItineraries))
	}
}

// TestGeneratePlanHandlerBadBody verifies a malformed body is a 400, not a
// service call.
func TestGeneratePlanHandlerBadBody(t *testing.T) {
	called := false
	itSvc := &fakeItineraryService{
		generatePlan: func(ctx context.Context, req request_models.TripRequest) (*memcache.PlanSession, *response_models.Itinerary, error) {
			called = true
			return nil, nil, nil
		},
	}
	ctrl := NewItineraryController(itSvc, &fakeRegenerateService{}, &fakeImageService{}, memcache.NewPlanSessions(), time.Hour)
	router := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	if called {
		t.Fatal("service was called with a malformed body")
	}
}

// TestGeneratePlanHandlerValidationError verifies field violations ride back
// in the error payload.
func TestGeneratePlanHandlerValidationError(t *testing.T) {
	itSvc := &fakeItineraryService{
		generatePlan: func(ctx context.Context, req request_models.TripRequest) (*memcache.PlanSession, *response_models.Itinerary, error) {
			return nil, nil, &utils.ValidationError{Violations: []utils.FieldViolation{
				{Path: "destinations", Message: "at least one destination is required"},
			}}
		},
	}
	ctrl := NewItineraryController(itSvc, &fakeRegenerateService{}, &fakeImageService{}, memcache.NewPlanSessions(), time.Hour)
	router := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "destinations") {
		t.Fatalf("violations missing from payload: %s", rec.Body.String())
	}
}

// TestRegenerateActivityHandler verifies the regenerate endpoint resolves the
// session from the Bearer token and passes the slot through.
func TestRegenerateActivityHandler(t *testing.T) {
	sessions := memcache.NewPlanSessions()
	session := sessions.Create(request_models.TripRequest{}, time.Hour)

	var gotSlot memcache.Slot
	regenSvc := &fakeRegenerateService{
		regenerateActivity: func(ctx context.Context, s *memcache.PlanSession, slot memcache.Slot) (*response_models.RegenerateResponse, error) {
			if s.ID() != session.ID() {
				t.Errorf("handler resolved session %q, want %q", s.ID(), session.ID())
			}
			gotSlot = slot
			return &response_models.RegenerateResponse{NewActivity: "x", Reasoning: "y"}, nil
		},
	}
	ctrl := NewItineraryController(&fakeItineraryService{}, regenSvc, &fakeImageService{}, sessions, time.Hour)
	router := newTestRouter(t, ctrl)

	token, err := utils.CreateSessionToken(session.ID(), time.Hour)
	if err != nil {
		t.Fatalf("CreateSessionToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries/activities/regenerate",
		strings.NewReader(`{"dayIndex":1,"activityIndex":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if gotSlot != (memcache.Slot{Day: 1, Activity: 2}) {
		t.Fatalf("slot %+v", gotSlot)
	}
}

// TestRegenerateActivityHandlerConflict verifies an in-flight regeneration
// maps to 409.
func TestRegenerateActivityHandlerConflict(t *testing.T) {
	sessions := memcache.NewPlanSessions()
	session := sessions.Create(request_models.TripRequest{}, time.Hour)

	regenSvc := &fakeRegenerateService{
		regenerateActivity: func(ctx context.Context, s *memcache.PlanSession, slot memcache.Slot) (*response_models.RegenerateResponse, error) {
			return nil, utils.ErrRegenerateInFlight
		},
	}
	ctrl := NewItineraryController(&fakeItineraryService{}, regenSvc, &fakeImageService{}, sessions, time.Hour)
	router := newTestRouter(t, ctrl)

	token, _ := utils.CreateSessionToken(session.ID(), time.Hour)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries/activities/regenerate",
		strings.NewReader(`{"dayIndex":0,"activityIndex":0}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status %d", rec.Code)
	}
}

// TestSessionRoutesRejectMissingToken verifies the session routes are closed
// without a Bearer token.
func TestSessionRoutesRejectMissingToken(t *testing.T) {
	ctrl := NewItineraryController(&fakeItineraryService{}, &fakeRegenerateService{}, &fakeImageService{}, memcache.NewPlanSessions(), time.Hour)
	router := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/itineraries/current", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rec.Code)
	}
}

// TestSessionRoutesRejectStaleSession verifies a valid token whose session
// has expired maps to 404.
func TestSessionRoutesRejectStaleSession(t *testing.T) {
	regenSvc := &fakeRegenerateService{
		regenerateActivity: func(ctx context.Context, s *memcache.PlanSession, slot memcache.Slot) (*response_models.RegenerateResponse, error) {
			t.Fatal("service called for a missing session")
			return nil, nil
		},
	}
	ctrl := NewItineraryController(&fakeItineraryService{}, regenSvc, &fakeImageService{}, memcache.NewPlanSessions(), time.Hour)
	router := newTestRouter(t, ctrl)

	token, _ := utils.CreateSessionToken("gone", time.Hour)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries/activities/regenerate",
		strings.NewReader(`{"dayIndex":0,"activityIndex":0}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}

// TestActivityImageHandler verifies the image endpoint returns the data URI.
func TestActivityImageHandler(t *testing.T) {
	sessions := memcache.NewPlanSessions()
	session := sessions.Create(request_models.TripRequest{}, time.Hour)

	imgSvc := &fakeImageService{
		synthesizeActivityImage: func(ctx context.Context, s *memcache.PlanSession, slot memcache.Slot) (*response_models.ImageResult, error) {
			return &response_models.ImageResult{ImageURL: "data:image/png;base64,AAAA"}, nil
		},
	}
	ctrl := NewItineraryController(&fakeItineraryService{}, &fakeRegenerateService{}, imgSvc, sessions, time.Hour)
	router := newTestRouter(t, ctrl)

	token, _ := utils.CreateSessionToken(session.ID(), time.Hour)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries/activities/image",
		strings.NewReader(`{"dayIndex":0,"activityIndex":0}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "data:image/png;base64,AAAA") {
		t.Fatalf("image missing from payload: %s", rec.Body.String())
	}
}
