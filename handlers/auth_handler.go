package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"hackathon-portal/models"
	"hackathon-portal/pkg/paseto"
	"hackathon-portal/pkg/password"
	util "hackathon-portal/pkg/utils"
	"hackathon-portal/repository"
)

type AuthHandler struct {
	userRepo repository.UserRepository
}

func NewAuthHandler(userRepo repository.UserRepository) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
	}
}

// Register godoc
// @Summary Register User
// @Description Registers a new user (admin only). Hacker registration details are optional.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.UserRegisterPayload true "User registration data"
// @Success 201 {object} models.RegisterSuccessResponse "User registered successfully"
// @Failure 400 {object} models.ValidationErrorResponse "Invalid request body or validation error"
// @Failure 500 {object} models.ErrorResponse "Failed to hash password or register user"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload models.UserRegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	hashedPassword, err := password.HashPassword(payload.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash password"})
	}

	newUser := &models.User{
		Email:        payload.Email,
		Password:     hashedPassword,
		Role:         payload.Role,
		IsFirstLogin: true,
	}

	// Only users that submitted the form get registration details; an
	// account without them still scans, as a generic "Participant".
	if payload.FirstName != "" || payload.LastName != "" {
		registration := &models.RegistrationDetails{
			FirstName:           payload.FirstName,
			LastName:            payload.LastName,
			School:              payload.School,
			IsHighSchoolStudent: payload.IsHighSchoolStudent,
		}
		if payload.ChaperoneFirstName != "" || payload.ChaperoneLastName != "" ||
			payload.ChaperoneEmail != "" || payload.ChaperonePhone != "" {
			registration.Chaperone = &models.ChaperoneContact{
				FirstName: payload.ChaperoneFirstName,
				LastName:  payload.ChaperoneLastName,
				Email:     payload.ChaperoneEmail,
				Phone:     payload.ChaperonePhone,
			}
		}
		newUser.Registration = registration
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.userRepo.CreateUser(ctx, newUser)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("failed to register user: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully (by admin)",
		"user_id": result.InsertedID,
	})
}

// Login godoc
// @Summary Login User
// @Description Logs in and returns a PASETO token when email and password are valid
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLoginPayload true "Login credentials"
// @Success 200 {object} models.LoginSuccessResponse "Login successful"
// @Failure 400 {object} models.ValidationErrorResponse "Invalid payload or validation error"
// @Failure 401 {object} models.ErrorResponse "Wrong email and password combination"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.UserLoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil || user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Wrong email and password combination"})
	}

	if !password.CheckPasswordHash(payload.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Wrong email and password combination"})
	}

	pasetoMaker, err := paseto.NewPasetoMaker()
	if err != nil || pasetoMaker == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize token generator"})
	}

	token, err := pasetoMaker.GenerateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// ChangePassword godoc
// @Summary Change Password
// @Description Changes the password of the currently logged in user
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param password body models.ChangePasswordPayload true "Password change data"
// @Success 200 {object} object{message=string} "Password changed successfully"
// @Failure 400 {object} models.ValidationErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} models.ErrorResponse "Not authenticated or old password mismatch"
// @Failure 500 {object} models.ErrorResponse "User not found or update failed"
// @Router /users/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or corrupted session data"})
	}

	var payload models.ChangePasswordPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "User not found"})
	}

	if !password.CheckPasswordHash(payload.OldPassword, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Old password does not match"})
	}

	if payload.NewPassword == payload.OldPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New password must be different from the old password."})
	}

	newHashedPassword, err := password.HashPassword(payload.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash new password"})
	}

	updateData := bson.M{
		"password":     newHashedPassword,
		"isFirstLogin": false,
		"updated_at":   time.Now(),
	}

	_, err = h.userRepo.UpdateUser(ctx, claims.UserID, updateData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("Failed to update password: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Password changed successfully."})
}

// Logout godoc
// @Summary Logout User
// @Description Logs the user out by telling the client to discard the token
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string} "Logout successful"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	// Tokens are stateless, so there is nothing to revoke server side.
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logout successful. Please remove the token on the client side.",
	})
}
