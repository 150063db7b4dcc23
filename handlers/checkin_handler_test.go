package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hackathon-portal/models"
	"hackathon-portal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byCode  map[string]*models.User
	byID    map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		byEmail: map[string]*models.User{},
		byCode:  map[string]*models.User{},
		byID:    map[primitive.ObjectID]*models.User{},
	}
	for _, u := range users {
		repo.byEmail[u.Email] = u
		repo.byCode[u.CheckinCode] = u
		repo.byID[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*mongo.InsertOneResult, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) FindUserByCheckinCode(ctx context.Context, code string) (*models.User, error) {
	return r.byCode[code], nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeUserRepo) UpdateUserPassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	return errors.New("not implemented")
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeUserRepo) GetAllUsers(ctx context.Context, filter bson.M, page, limit int64) ([]models.User, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (r *fakeUserRepo) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	return nil, errors.New("not implemented")
}

type fakeEventRepo struct {
	events map[primitive.ObjectID]*models.Event
}

func newFakeEventRepo(events ...*models.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: map[primitive.ObjectID]*models.Event{}}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (r *fakeEventRepo) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return r.events[id], nil
}

func (r *fakeEventRepo) FindAll(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEventRepo) ListSelector(ctx context.Context) ([]models.EventSelectorItem, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeEventRepo) Update(ctx context.Context, id primitive.ObjectID, payload *models.EventUpdatePayload) (*mongo.UpdateResult, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeEventRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return errors.New("not implemented")
}

type fakeCheckinRepo struct {
	checkins     []*models.CheckinRecord
	attempts     []*models.ScanAttempt
	existing     map[string]bool
	duplicateErr bool
}

func newFakeCheckinRepo() *fakeCheckinRepo {
	return &fakeCheckinRepo{existing: map[string]bool{}}
}

func pairKey(userID, eventID primitive.ObjectID) string {
	return userID.Hex() + "/" + eventID.Hex()
}

func (r *fakeCheckinRepo) CheckinExists(ctx context.Context, userID, eventID primitive.ObjectID) (bool, error) {
	return r.existing[pairKey(userID, eventID)], nil
}

func (r *fakeCheckinRepo) CreateCheckinWithAttempt(ctx context.Context, record *models.CheckinRecord, attempt *models.ScanAttempt) error {
	if r.duplicateErr || r.existing[pairKey(record.UserID, record.EventID)] {
		return repository.ErrDuplicateCheckin
	}
	r.checkins = append(r.checkins, record)
	r.attempts = append(r.attempts, attempt)
	r.existing[pairKey(record.UserID, record.EventID)] = true
	return nil
}

func (r *fakeCheckinRepo) RecordAttempt(ctx context.Context, attempt *models.ScanAttempt) error {
	r.attempts = append(r.attempts, attempt)
	return nil
}

func (r *fakeCheckinRepo) ListHistory(ctx context.Context, limit int64) ([]models.ScanHistoryEntry, error) {
	return []models.ScanHistoryEntry{}, nil
}

func newScanApp(claims *models.Claims, checkinRepo repository.CheckinRepository, userRepo repository.UserRepository, eventRepo repository.EventRepository) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if claims != nil {
			c.Locals("user", claims)
		}
		return c.Next()
	})
	handler := NewCheckinHandler(checkinRepo, userRepo, eventRepo)
	app.Post("/scan", handler.ValidateScan)
	return app
}

func postScan(t *testing.T, app *fiber.App, payload models.ScanPayload) (*http.Response, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/scan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	resp.Body.Close()

	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("failed to decode response %q: %v", raw, err)
		}
	}
	return resp, decoded
}

func adminClaims() *models.Claims {
	return &models.Claims{
		UserID: primitive.NewObjectID(),
		Email:  "admin@hackathon-portal.dev",
		Role:   "admin",
	}
}

func TestValidateScan(t *testing.T) {
	admin := &models.User{
		ID:          primitive.NewObjectID(),
		Email:       "admin@hackathon-portal.dev",
		Role:        "admin",
		CheckinCode: "admin-code",
	}
	event := &models.Event{
		ID:   primitive.NewObjectID(),
		Name: "Opening Ceremony",
	}

	t.Run("successful check-in", func(t *testing.T) {
		participant := &models.User{
			ID:          primitive.NewObjectID(),
			Email:       "alex.kim@example.com",
			Role:        "hacker",
			CheckinCode: "code-alex",
			Registration: &models.RegistrationDetails{
				FirstName: "Alex",
				LastName:  "Kim",
			},
		}
		checkinRepo := newFakeCheckinRepo()
		app := newScanApp(adminClaims(), checkinRepo, newFakeUserRepo(admin, participant), newFakeEventRepo(event))

		resp, body := postScan(t, app, models.ScanPayload{ScannedCode: "code-alex", EventID: event.ID.Hex()})

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if body["success"] != true {
			t.Errorf("expected success true, got %v", body["success"])
		}
		if body["name"] != "Alex Kim" {
			t.Errorf("expected name Alex Kim, got %v", body["name"])
		}
		if body["message"] != "User successfully checked in." {
			t.Errorf("unexpected message: %v", body["message"])
		}
		if body["isHighSchoolStudent"] != false {
			t.Errorf("expected isHighSchoolStudent false, got %v", body["isHighSchoolStudent"])
		}
		if _, disclosed := body["chaperoneInfo"]; disclosed {
			t.Error("chaperoneInfo must not be present for adult participants")
		}
		if len(checkinRepo.checkins) != 1 {
			t.Fatalf("expected 1 check-in record, got %d", len(checkinRepo.checkins))
		}
		if len(checkinRepo.attempts) != 1 {
			t.Fatalf("expected 1 scan attempt, got %d", len(checkinRepo.attempts))
		}
		attempt := checkinRepo.attempts[0]
		if !attempt.Successful {
			t.Error("expected the recorded attempt to be successful")
		}
		if attempt.UserID != participant.ID {
			t.Error("attempt should reference the participant")
		}
		if attempt.AdminID != admin.ID {
			t.Error("attempt should reference the scanning admin")
		}
		if attempt.ScannedCode != "code-alex" {
			t.Errorf("attempt should keep the raw scanned code, got %q", attempt.ScannedCode)
		}
	})

	t.Run("second scan for the same event is rejected", func(t *testing.T) {
		participant := &models.User{
			ID:          primitive.NewObjectID(),
			Email:       "alex.kim@example.com",
			Role:        "hacker",
			CheckinCode: "code-alex",
			Registration: &models.RegistrationDetails{
				FirstName: "Alex",
				LastName:  "Kim",
			},
		}
		checkinRepo := newFakeCheckinRepo()
		checkinRepo.existing[pairKey(participant.ID, event.ID)] = true
		app := newScanApp(adminClaims(), checkinRepo, newFakeUserRepo(admin, participant), newFakeEventRepo(event))

		resp, body := postScan(t, app, models.ScanPayload{ScannedCode: "code-alex", EventID: event.ID.Hex()})

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if body["success"] != false {
			t.Errorf("expected success false, got %v", body["success"])
		}
		if body["message"] != "User has already checked in." {
			t.Errorf("unexpected message: %v", body["message"])
		}
		if body["name"] != "Alex Kim" {
			t.Errorf("expected name Alex Kim, got %v", body["name"])
		}
		if len(checkinRepo.checkins) != 0 {
			t.Errorf("duplicate scan must not add a check-in record, got %d", len(checkinRepo.checkins))
		}
		if len(checkinRepo.attempts) != 1 || checkinRepo.attempts[0].Successful {
			t.Error("duplicate scan must record exactly one failed attempt")
		}
	})

	t.Run("lost insert race maps to already checked in", func(t *testing.T) {
		participant := &models.User{
			ID:          primitive.NewObjectID(),
			Email:       "alex.kim@example.com",
			Role:        "hacker",
			CheckinCode: "code-alex",
			Registration: &models.RegistrationDetails{
				FirstName: "Alex",
				LastName:  "Kim",
			},
		}
		checkinRepo := newFakeCheckinRepo()
		checkinRepo.duplicateErr = true
		app := newScanApp(adminClaims(), checkinRepo, newFakeUserRepo(admin, participant), newFakeEventRepo(event))

		resp, body := postScan(t, app, models.ScanPayload{ScannedCode: "code-alex", EventID: event.ID.Hex()})

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if body["success"] != false {
			t.Errorf("expected success false, got %v", body["success"])
		}
		if body["message"] != "User has already checked in." {
			t.Errorf("unexpected message: %v", body["message"])
		}
		if len(checkinRepo.checkins) != 0 {
			t.Error("lost race must not add a check-in record")
		}
		if len(checkinRepo.attempts) != 1 || checkinRepo.attempts[0].Successful {
			t.Error("lost race must record exactly one failed attempt")
		}
	})

	t.Run("unknown code records an unresolved attempt", func(t *testing.T) {
		checkinRepo := newFakeCheckinRepo()
		app := newScanApp(adminClaims(), checkinRepo, newFakeUserRepo(admin), newFakeEventRepo(event))

		resp, body := postScan(t, app, models.ScanPayload{ScannedCode: "garbage-code", EventID: event.ID.Hex()})

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if body["success"] != false {
			t.Errorf("expected success false, got %v", body["success"])
		}
		if body["message"] != "Invalid QR code. No matching user found." {
			t.Errorf("unexpected message: %v", body["message"])
		}
		if _, leaked := body["name"]; leaked {
			t.Error("unknown code must not leak a name")
		}
		if len(checkinRepo.checkins) != 0 {
			t.Error("unknown code must not add a check-in record")
		}
		if len(checkinRepo.attempts) != 1 {
			t.Fatalf("expected 1 scan attempt, got %d", len(checkinRepo.attempts))
		}
		attempt := checkinRepo.attempts[0]
		if attempt.Successful {
			t.Error("unresolved attempt must be marked failed")
		}
		if !attempt.UserID.IsZero() {
			t.Error("unresolved attempt must keep a zero user id")
		}
		if attempt.ScannedCode != "garbage-code" {
			t.Errorf("unresolved attempt must keep the raw code, got %q", attempt.ScannedCode)
		}
	})

	t.Run("minor discloses chaperone info", func(t *testing.T) {
		participant := &models.User{
			ID:          primitive.NewObjectID(),
			Email:       "jamie.lee@example.com",
			Role:        "hacker",
			CheckinCode: "code-jamie",
			Registration: &models.RegistrationDetails{
				FirstName:           "Jamie",
				LastName:            "Lee",
				IsHighSchoolStudent: true,
				Chaperone: &models.ChaperoneContact{
					FirstName: "Jane",
					LastName:  "Doe",
					Email:     "jane@example.com",
					Phone:     "555-1234",
				},
			},
		}
		checkinRepo := newFakeCheckinRepo()
		app := newScanApp(adminClaims(), checkinRepo, newFakeUserRepo(admin, participant), newFakeEventRepo(event))

		resp, body := postScan(t, app, models.ScanPayload{ScannedCode: "code-jamie", EventID: event.ID.Hex()})

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if body["isHighSchoolStudent"] != true {
			t.Errorf("expected isHighSchoolStudent true, got %v", body["isHighSchoolStudent"])
		}
		info, ok := body["chaperoneInfo"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected chaperoneInfo object, got %v", body["chaperoneInfo"])
		}
		if info["chaperoneName"] != "Jane Doe" {
			t.Errorf("expected chaperone name Jane Doe, got %v", info["chaperoneName"])
		}
		if info["chaperoneEmail"] != "jane@example.com" {
			t.Errorf("unexpected chaperone email: %v", info["chaperoneEmail"])
		}
		if info["chaperonePhone"] != "555-1234" {
			t.Errorf("unexpected chaperone phone: %v", info["chaperonePhone"])
		}
	})

	t.Run("minor without chaperone record gets placeholders", func(t *testing.T) {
		participant := &models.User{
			ID:          primitive.NewObjectID(),
			Email:       "sam.park@example.com",
			Role:        "hacker",
			CheckinCode: "code-sam",
			Registration: &models.RegistrationDetails{
				FirstName:           "Sam",
				LastName:            "Park",
				IsHighSchoolStudent: true,
			},
		}
		checkinRepo := newFakeCheckinRepo()
		app := newScanApp(adminClaims(), checkinRepo, newFakeUserRepo(admin, participant), newFakeEventRepo(event))

		resp, body := postScan(t, app, models.ScanPayload{ScannedCode: "code-sam", EventID: event.ID.Hex()})

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		info, ok := body["chaperoneInfo"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected chaperoneInfo object, got %v", body["chaperoneInfo"])
		}
		if info["chaperoneName"] != "" {
			t.Errorf("expected empty chaperone name, got %v", info["chaperoneName"])
		}
		if info["chaperoneEmail"] != "N/A" {
			t.Errorf("expected N/A chaperone email, got %v", info["chaperoneEmail"])
		}
		if info["chaperonePhone"] != "N/A" {
			t.Errorf("expected N/A chaperone phone, got %v", info["chaperonePhone"])
		}
	})

	t.Run("participant without registration scans as Participant", func(t *testing.T) {
		participant := &models.User{
			ID:          primitive.NewObjectID(),
			Email:       "pending.signup@example.com",
			Role:        "hacker",
			CheckinCode: "code-pending",
		}
		checkinRepo := newFakeCheckinRepo()
		app := newScanApp(adminClaims(), checkinRepo, newFakeUserRepo(admin, participant), newFakeEventRepo(event))

		resp, body := postScan(t, app, models.ScanPayload{ScannedCode: "code-pending", EventID: event.ID.Hex()})

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if body["success"] != true {
			t.Errorf("expected success true, got %v", body["success"])
		}
		if body["name"] != "Participant" {
			t.Errorf("expected placeholder name Participant, got %v", body["name"])
		}
	})

	t.Run("non-admin is rejected without any writes", func(t *testing.T) {
		participant := &models.User{
			ID:          primitive.NewObjectID(),
			Email:       "alex.kim@example.com",
			Role:        "hacker",
			CheckinCode: "code-alex",
		}
		claims := &models.Claims{
			UserID: participant.ID,
			Email:  participant.Email,
			Role:   "hacker",
		}
		checkinRepo := newFakeCheckinRepo()
		app := newScanApp(claims, checkinRepo, newFakeUserRepo(admin, participant), newFakeEventRepo(event))

		resp, body := postScan(t, app, models.ScanPayload{ScannedCode: "code-alex", EventID: event.ID.Hex()})

		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", resp.StatusCode)
		}
		if body["error"] != "You are not authorized to perform this action." {
			t.Errorf("unexpected error message: %v", body["error"])
		}
		if len(checkinRepo.checkins) != 0 || len(checkinRepo.attempts) != 0 {
			t.Error("authorization failure must not write to the database")
		}
	})

	t.Run("missing session is rejected without any writes", func(t *testing.T) {
		checkinRepo := newFakeCheckinRepo()
		app := newScanApp(nil, checkinRepo, newFakeUserRepo(admin), newFakeEventRepo(event))

		resp, _ := postScan(t, app, models.ScanPayload{ScannedCode: "code-alex", EventID: event.ID.Hex()})

		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", resp.StatusCode)
		}
		if len(checkinRepo.checkins) != 0 || len(checkinRepo.attempts) != 0 {
			t.Error("authorization failure must not write to the database")
		}
	})

	t.Run("admin session without backing record is rejected without writes", func(t *testing.T) {
		participant := &models.User{
			ID:          primitive.NewObjectID(),
			Email:       "alex.kim@example.com",
			Role:        "hacker",
			CheckinCode: "code-alex",
		}
		checkinRepo := newFakeCheckinRepo()
		// The user repo knows the participant but not the admin the
		// session claims to be.
		app := newScanApp(adminClaims(), checkinRepo, newFakeUserRepo(participant), newFakeEventRepo(event))

		resp, body := postScan(t, app, models.ScanPayload{ScannedCode: "code-alex", EventID: event.ID.Hex()})

		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.StatusCode)
		}
		if body["error"] != "Admin not found." {
			t.Errorf("unexpected error message: %v", body["error"])
		}
		if len(checkinRepo.checkins) != 0 || len(checkinRepo.attempts) != 0 {
			t.Error("missing admin record must not write to the database")
		}
	})

	t.Run("unknown event is an integrity failure without audit", func(t *testing.T) {
		participant := &models.User{
			ID:          primitive.NewObjectID(),
			Email:       "alex.kim@example.com",
			Role:        "hacker",
			CheckinCode: "code-alex",
		}
		checkinRepo := newFakeCheckinRepo()
		app := newScanApp(adminClaims(), checkinRepo, newFakeUserRepo(admin, participant), newFakeEventRepo())

		resp, body := postScan(t, app, models.ScanPayload{ScannedCode: "code-alex", EventID: primitive.NewObjectID().Hex()})

		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.StatusCode)
		}
		if body["error"] != "Event not found" {
			t.Errorf("unexpected error message: %v", body["error"])
		}
		if len(checkinRepo.attempts) != 0 {
			t.Error("unknown event must not produce an audit record")
		}
	})

	t.Run("missing fields are rejected before any lookup", func(t *testing.T) {
		checkinRepo := newFakeCheckinRepo()
		app := newScanApp(adminClaims(), checkinRepo, newFakeUserRepo(admin), newFakeEventRepo(event))

		resp, _ := postScan(t, app, models.ScanPayload{ScannedCode: "", EventID: ""})

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.StatusCode)
		}
		if len(checkinRepo.attempts) != 0 {
			t.Error("invalid payload must not produce an audit record")
		}
	})
}

func TestValidateScanDifferentEventsIndependent(t *testing.T) {
	admin := &models.User{
		ID:          primitive.NewObjectID(),
		Email:       "admin@hackathon-portal.dev",
		Role:        "admin",
		CheckinCode: "admin-code",
	}
	participant := &models.User{
		ID:          primitive.NewObjectID(),
		Email:       "alex.kim@example.com",
		Role:        "hacker",
		CheckinCode: "code-alex",
		Registration: &models.RegistrationDetails{
			FirstName: "Alex",
			LastName:  "Kim",
		},
	}
	dinner := &models.Event{ID: primitive.NewObjectID(), Name: "Dinner"}
	workshop := &models.Event{ID: primitive.NewObjectID(), Name: "Workshop"}

	checkinRepo := newFakeCheckinRepo()
	app := newScanApp(adminClaims(), checkinRepo, newFakeUserRepo(admin, participant), newFakeEventRepo(dinner, workshop))

	resp, body := postScan(t, app, models.ScanPayload{ScannedCode: "code-alex", EventID: dinner.ID.Hex()})
	if resp.StatusCode != http.StatusOK || body["success"] != true {
		t.Fatalf("first event check-in should succeed, got status %d body %v", resp.StatusCode, body)
	}

	resp, body = postScan(t, app, models.ScanPayload{ScannedCode: "code-alex", EventID: workshop.ID.Hex()})
	if resp.StatusCode != http.StatusOK || body["success"] != true {
		t.Fatalf("second event check-in should succeed, got status %d body %v", resp.StatusCode, body)
	}

	resp, body = postScan(t, app, models.ScanPayload{ScannedCode: "code-alex", EventID: dinner.ID.Hex()})
	if resp.StatusCode != http.StatusOK || body["success"] != false {
		t.Fatalf("repeat scan for the first event should be rejected, got status %d body %v", resp.StatusCode, body)
	}

	if len(checkinRepo.checkins) != 2 {
		t.Errorf("expected 2 check-in records, got %d", len(checkinRepo.checkins))
	}
	if len(checkinRepo.attempts) != 3 {
		t.Errorf("expected 3 scan attempts, got %d", len(checkinRepo.attempts))
	}
}
