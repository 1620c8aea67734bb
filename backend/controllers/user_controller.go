package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"institute/backend/chain"
	"institute/backend/config"
	"institute/backend/models"
	"institute/backend/utils"
)

type UserController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Chain chain.Gateway
}

func NewUserController(db *gorm.DB, cfg *config.Config, gateway chain.Gateway) *UserController {
	return &UserController{DB: db, Cfg: cfg, Chain: gateway}
}

// Create godoc
// @Summary Create a user
// @Description Registers a wallet address on first connect, unlocks the
// starter course and mints the developer resume NFT
// @Tags users
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Wallet address"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /createUser [post]
func (uc *UserController) Create(c *fiber.Ctx) error {
	type createInput struct {
		Address string `json:"address"`
	}

	var input createInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Address == "" {
		return utils.BadRequest(c, "Address is required")
	}

	var existing models.User
	err := uc.DB.Where("address = ?", input.Address).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "User already exists",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	var userCount int64
	if err := uc.DB.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	// Mint the resume NFT first so a gateway failure leaves no local state.
	transactionHash := ""
	if uc.Chain != nil {
		hash, err := uc.Chain.MintResume(
			c.Context(),
			input.Address,
			fmt.Sprintf("Developer Resume %d", userCount),
			"Developer Resume for Aptos Courses",
			uc.Cfg.ResumeBaseURI,
		)
		if err != nil {
			return utils.InternalServerError(c, "Error minting resume NFT")
		}
		transactionHash = hash
	}

	user := models.User{
		Address:         input.Address,
		UserName:        fmt.Sprintf("User%d", userCount),
		CoursesUnlocked: datatypes.JSONSlice[string]{uc.Cfg.StarterCourseID},
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not create user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":         true,
		"message":         "User created successfully",
		"transactionHash": transactionHash,
	})
}

// Profile godoc
// @Summary Get the logged-in user's profile
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security CookieAuth
// @Router /profile [get]
func (uc *UserController) Profile(c *fiber.Ctx) error {
	address, err := utils.ExtractAddressFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := uc.DB.Where("address = ?", address).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"address":          user.Address,
		"userName":         user.UserName,
		"balance":          user.Balance,
		"coursesUnlocked":  user.CoursesUnlocked,
		"coursesCompleted": user.CoursesCompleted,
		"courseScores":     user.CourseScores,
		"twitter":          user.Twitter,
		"github":           user.Github,
		"website":          user.Website,
	})
}

// Update godoc
// @Summary Update the logged-in user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security CookieAuth
// @Router /updateUser [post]
func (uc *UserController) Update(c *fiber.Ctx) error {
	address, err := utils.ExtractAddressFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type updateInput struct {
		Name    string `json:"name"`
		Twitter string `json:"twitter"`
		Github  string `json:"github"`
		Website string `json:"website"`
	}

	var input updateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Name is required")
	}

	var user models.User
	if err := uc.DB.Where("address = ?", address).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	user.UserName = input.Name
	user.Twitter = input.Twitter
	user.Github = input.Github
	user.Website = input.Website

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}
