package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hackathon-portal/models"
	"hackathon-portal/repository"
)

type CheckinHandler struct {
	checkinRepo repository.CheckinRepository
	userRepo    repository.UserRepository
	eventRepo   repository.EventRepository
}

func NewCheckinHandler(checkinRepo repository.CheckinRepository, userRepo repository.UserRepository, eventRepo repository.EventRepository) *CheckinHandler {
	return &CheckinHandler{
		checkinRepo: checkinRepo,
		userRepo:    userRepo,
		eventRepo:   eventRepo,
	}
}

// ValidateScan godoc
// @Summary Validate a scanned participant code
// @Description Validates a scanned QR code against an event, records the attempt, and checks the participant in exactly once
// @Tags Checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scan body models.ScanPayload true "Scanned code and event"
// @Success 200 {object} models.ScanSuccessResponse "Validation outcome (success true or false)"
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid session"
// @Failure 403 {object} models.ForbiddenErrorResponse "Actor is not an admin"
// @Failure 404 {object} models.NotFoundErrorResponse "Admin record or event missing"
// @Router /checkin/scan [post]
func (h *CheckinHandler) ValidateScan(c *fiber.Ctx) error {
	// The admin gate also runs as route middleware; checking again here
	// keeps the no-write guarantee local to the validator. Nothing below
	// this point may touch the database for a non-admin actor.
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "You are not authorized to perform this action."})
	}
	if claims.Role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not authorized to perform this action."})
	}

	var payload models.ScanPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload: " + err.Error()})
	}
	if payload.ScannedCode == "" || payload.EventID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "scanned_code and event_id are required"})
	}

	eventID, err := primitive.ObjectIDFromHex(payload.EventID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	event, err := h.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up event"})
	}
	if event == nil {
		// The event id comes from the scanner's own selector, not from the
		// scanned code, so a miss here is a misconfigured client rather
		// than a routine scan outcome. No audit write.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}

	// The session says admin; make sure a backing record actually exists.
	// Without one there is no valid admin id to attribute an attempt to,
	// so this path writes no audit record either.
	admin, err := h.userRepo.FindUserByEmail(ctx, claims.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up admin"})
	}
	if admin == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Admin not found."})
	}

	// From here on every terminal outcome appends exactly one scan attempt.
	participant, err := h.userRepo.FindUserByCheckinCode(ctx, payload.ScannedCode)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up participant"})
	}
	if participant == nil {
		h.recordAttempt(ctx, primitive.NilObjectID, payload.ScannedCode, admin.ID, eventID, false)
		return c.Status(fiber.StatusOK).JSON(models.ScanFailureResponse{
			Message: "Invalid QR code. No matching user found.",
		})
	}

	exists, err := h.checkinRepo.CheckinExists(ctx, participant.ID, eventID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check existing check-in"})
	}
	if exists {
		h.recordAttempt(ctx, participant.ID, payload.ScannedCode, admin.ID, eventID, false)
		return c.Status(fiber.StatusOK).JSON(models.ScanFailureResponse{
			Name:    participant.DisplayName(),
			Message: "User has already checked in.",
		})
	}

	record := &models.CheckinRecord{
		ID:        primitive.NewObjectID(),
		UserID:    participant.ID,
		EventID:   eventID,
		AdminID:   admin.ID,
		CreatedAt: time.Now(),
	}
	attempt := &models.ScanAttempt{
		ID:          primitive.NewObjectID(),
		UserID:      participant.ID,
		ScannedCode: payload.ScannedCode,
		AdminID:     admin.ID,
		EventID:     eventID,
		Successful:  true,
		CreatedAt:   time.Now(),
	}

	err = h.checkinRepo.CreateCheckinWithAttempt(ctx, record, attempt)
	if errors.Is(err, repository.ErrDuplicateCheckin) {
		// Lost a race against a concurrent scan of the same code. The
		// unique index kept the ledger clean; report it like any other
		// duplicate so the scanner just re-arms.
		h.recordAttempt(ctx, participant.ID, payload.ScannedCode, admin.ID, eventID, false)
		return c.Status(fiber.StatusOK).JSON(models.ScanFailureResponse{
			Name:    participant.DisplayName(),
			Message: "User has already checked in.",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check in participant"})
	}

	response := models.ScanSuccessResponse{
		Success:             true,
		ID:                  participant.ID.Hex(),
		Name:                participant.DisplayName(),
		Message:             "User successfully checked in.",
		IsHighSchoolStudent: participant.IsMinor(),
	}
	if participant.IsMinor() {
		response.ChaperoneInfo = participant.BuildChaperoneInfo()
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *CheckinHandler) recordAttempt(ctx context.Context, userID primitive.ObjectID, scannedCode string, adminID, eventID primitive.ObjectID, successful bool) {
	attempt := &models.ScanAttempt{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		ScannedCode: scannedCode,
		AdminID:     adminID,
		EventID:     eventID,
		Successful:  successful,
		CreatedAt:   time.Now(),
	}
	// Audit writes must not mask the scan outcome; a failed append is the
	// one place we only log and move on.
	if err := h.checkinRepo.RecordAttempt(ctx, attempt); err != nil {
		log.Printf("Failed to record scan attempt: %v", err)
	}
}

// GetScanHistory returns recent scan attempts, most recent first, for the
// scanner's rolling history panel.
func (h *CheckinHandler) GetScanHistory(c *fiber.Ctx) error {
	limit, err := strconv.ParseInt(c.Query("limit", "50"), 10, 64)
	if err != nil || limit <= 0 || limit > 500 {
		limit = 50
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	history, err := h.checkinRepo.ListHistory(ctx, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve scan history"})
	}

	return c.Status(fiber.StatusOK).JSON(history)
}

// GenerateBadge renders a participant's check-in code as a QR PNG, returned
// base64-encoded for the badge printing page.
func (h *CheckinHandler) GenerateBadge(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or corrupted session data"})
	}

	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if claims.Role != "admin" && claims.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not authorized to perform this action."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up user"})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	png, err := qrcode.Encode(user.CheckinCode, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate QR code image"})
	}

	encodedString := base64.StdEncoding.EncodeToString(png)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user_id":       user.ID.Hex(),
		"name":          user.DisplayName(),
		"qr_code_image": "data:image/png;base64," + encodedString,
	})
}
