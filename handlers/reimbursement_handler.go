package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hackathon-portal/config"
	"hackathon-portal/models"
	util "hackathon-portal/pkg/utils"
	"hackathon-portal/repository"
)

type ReimbursementHandler struct {
	reimbursementRepo repository.ReimbursementRepository
}

func NewReimbursementHandler(reimbursementRepo repository.ReimbursementRepository) *ReimbursementHandler {
	return &ReimbursementHandler{reimbursementRepo: reimbursementRepo}
}

// CreateReimbursement godoc
// @Summary Submit travel reimbursement
// @Description Submits a travel reimbursement request for the logged in participant
// @Tags Reimbursements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ReimbursementCreatePayload true "Reimbursement data"
// @Success 201 {object} models.Reimbursement
// @Failure 400 {object} models.ValidationErrorResponse
// @Router /reimbursements [post]
func (h *ReimbursementHandler) CreateReimbursement(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or corrupted session data"})
	}

	var payload models.ReimbursementCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	newRequest := &models.Reimbursement{
		ID:        primitive.NewObjectID(),
		UserID:    claims.UserID,
		Origin:    payload.Origin,
		Amount:    payload.Amount,
		Reason:    payload.Reason,
		Status:    "pending",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.reimbursementRepo.Create(ctx, newRequest); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create reimbursement request"})
	}

	return c.Status(fiber.StatusCreated).JSON(newRequest)
}

// GetMyReimbursements lists the reimbursement requests of the logged in user.
func (h *ReimbursementHandler) GetMyReimbursements(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or corrupted session data"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	requests, err := h.reimbursementRepo.FindByUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve reimbursement requests"})
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

// GetAllReimbursements lists every reimbursement request (admin only).
func (h *ReimbursementHandler) GetAllReimbursements(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	requests, err := h.reimbursementRepo.FindAll(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve reimbursement requests"})
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

// UploadReceipt attaches a receipt file to a reimbursement request. The
// file bytes are stored in GridFS and only the file ID is kept on the
// request document.
func (h *ReimbursementHandler) UploadReceipt(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or corrupted session data"})
	}

	requestID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reimbursement ID"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	request, err := h.reimbursementRepo.FindByID(ctx, requestID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up reimbursement request"})
	}
	if request == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reimbursement request not found"})
	}

	if claims.Role != "admin" && request.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not authorized to perform this action."})
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Receipt file is required"})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	defer src.Close()

	bucket, err := config.GetGridFSBucket()
	if err != nil {
		log.Printf("ERROR: failed to get GridFS bucket: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to access file storage"})
	}

	uniqueFileName := fmt.Sprintf("%d-%s", time.Now().Unix(), file.Filename)
	fileID, err := bucket.UploadFromStream(uniqueFileName, src)
	if err != nil {
		log.Printf("ERROR: failed to upload receipt to GridFS: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store receipt file"})
	}

	if _, err := h.reimbursementRepo.UpdateReceiptFileID(ctx, requestID, fileID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save receipt file reference"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Receipt uploaded successfully",
		"file_id": fileID.Hex(),
	})
}

// UpdateReimbursementStatus approves or rejects a request (admin only).
func (h *ReimbursementHandler) UpdateReimbursementStatus(c *fiber.Ctx) error {
	requestID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reimbursement ID"})
	}

	var payload models.ReimbursementUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.reimbursementRepo.UpdateStatus(ctx, requestID, payload.Status, payload.Note)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update reimbursement status"})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reimbursement request not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Reimbursement status updated successfully"})
}
