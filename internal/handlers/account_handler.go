package handlers

import (
	"errors"
	"fmt"

	"library-backend/internal/forms"
	"library-backend/internal/middleware"
	"library-backend/internal/services"
	"library-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service services.AccountService
	logger  *logrus.Logger
}

func NewAccountHandler(service services.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger,
	}
}

// Register godoc
// @Summary Create a reader account
// @Description Creates the user and its profile. Passwords must match and the username and email must be unused.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body forms.RegistrationForm true "Registration"
// @Success 201 {object} utils.StandardResponse{data=UserResponse}
// @Failure 400 {object} utils.StandardResponse
// @Failure 409 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /register [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var form forms.RegistrationForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	form.Normalize()

	user, err := h.service.Register(c.UserContext(), form)
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Passwords do not match!")
	case errors.Is(err, services.ErrUsernameTaken):
		return utils.ErrorResponse(c, fiber.StatusConflict, fmt.Sprintf("Username %s is already taken!", form.Username))
	case errors.Is(err, services.ErrEmailTaken):
		return utils.ErrorResponse(c, fiber.StatusConflict, fmt.Sprintf("User with email %s is already registered!", form.Email))
	case err != nil:
		return respondError(c, h.logger, err, "Failed to register account")
	}

	message := fmt.Sprintf("Account with the name %s has been successfully registered!", user.Username)
	return utils.SuccessResponse(c, fiber.StatusCreated, message, newUserResponse(user))
}

// Login godoc
// @Summary Obtain an access token
// @Tags accounts
// @Accept json
// @Produce json
// @Param credentials body forms.LoginForm true "Credentials"
// @Success 200 {object} utils.StandardResponse{data=LoginResponse}
// @Failure 401 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /login [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var form forms.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	session, err := h.service.Login(c.UserContext(), form)
	if errors.Is(err, services.ErrInvalidLogin) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please enter a correct username and password")
	}
	if err != nil {
		return respondError(c, h.logger, err, "Failed to log in")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Logged in successfully", LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      newUserResponse(session.User),
	})
}

// GetProfile godoc
// @Summary Current user's profile
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse{data=UserResponse}
// @Failure 401 {object} utils.StandardResponse
// @Router /profile [get]
func (h *AccountHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve profile")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Profile retrieved successfully", newUserResponse(user))
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Description Username and email plus an optional photo, which is shrunk to fit 300x300
// @Tags accounts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param photo formData file false "Profile photo"
// @Success 200 {object} utils.StandardResponse{data=UserResponse}
// @Failure 401 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /profile [put]
func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	var form forms.UserUpdateForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var photo *services.PhotoUpload
	if header, err := c.FormFile("photo"); err == nil {
		file, err := header.Open()
		if err != nil {
			return respondError(c, h.logger, err, "Failed to read uploaded photo")
		}
		defer file.Close()
		photo = &services.PhotoUpload{Filename: header.Filename, Reader: file}
	}

	user, err := h.service.UpdateProfile(c.UserContext(), middleware.CurrentUser(c), form, photo)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update profile")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Profile updated!", newUserResponse(user))
}
