package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hackathon-portal/models"
	util "hackathon-portal/pkg/utils"
	"hackathon-portal/repository"
)

type UserHandler struct {
	userRepo repository.UserRepository
}

func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// GetUserByID godoc
// @Summary Get user by ID
// @Description Returns a user profile. Users can only read their own profile unless they are an admin.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.GetUserSuccessResponse
// @Failure 403 {object} models.ForbiddenErrorResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
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

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User found",
		"user":    user,
	})
}

// UpdateUser updates the registration details of a user. Hackers can only
// update themselves; admins can update anyone.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
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

	var payload models.UserUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	updateData := bson.M{}
	if payload.FirstName != "" {
		updateData["registration.first_name"] = payload.FirstName
	}
	if payload.LastName != "" {
		updateData["registration.last_name"] = payload.LastName
	}
	if payload.School != "" {
		updateData["registration.school"] = payload.School
	}
	if payload.IsHighSchoolStudent != nil {
		updateData["registration.is_high_school_student"] = *payload.IsHighSchoolStudent
	}
	if payload.ChaperoneFirstName != "" {
		updateData["registration.chaperone.first_name"] = payload.ChaperoneFirstName
	}
	if payload.ChaperoneLastName != "" {
		updateData["registration.chaperone.last_name"] = payload.ChaperoneLastName
	}
	if payload.ChaperoneEmail != "" {
		updateData["registration.chaperone.email"] = payload.ChaperoneEmail
	}
	if payload.ChaperonePhone != "" {
		updateData["registration.chaperone.phone"] = payload.ChaperonePhone
	}

	if len(updateData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nothing to update"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.userRepo.UpdateUser(ctx, userID, updateData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User updated successfully",
		"user_id": userID.Hex(),
	})
}

// GetAllUsers godoc
// @Summary List users
// @Description Lists users with pagination and optional role/email filters (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param role query string false "Filter by role"
// @Success 200 {object} models.GetAllUsersSuccessResponse
// @Router /admin/users [get]
func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if role := c.Query("role"); role != "" {
		filter["role"] = role
	}
	if email := c.Query("email"); email != "" {
		filter["email"] = bson.M{"$regex": email, "$options": "i"}
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.userRepo.GetAllUsers(ctx, filter, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve users"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Users retrieved successfully",
		"users":   users,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.userRepo.DeleteUser(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User deleted successfully",
		"user_id": userID.Hex(),
	})
}

// GetDashboardStats returns the headline numbers for the admin dashboard.
func (h *UserHandler) GetDashboardStats(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.userRepo.GetDashboardStats(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve dashboard stats"})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
