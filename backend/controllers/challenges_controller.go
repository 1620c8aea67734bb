package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"institute/backend/config"
	"institute/backend/models"
	"institute/backend/utils"
)

type ChallengesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewChallengesController(db *gorm.DB, cfg *config.Config) *ChallengesController {
	return &ChallengesController{DB: db, Cfg: cfg}
}

// Fetch godoc
// @Summary List all challenges
// @Tags challenges
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /fetchChallenges [get]
func (cc *ChallengesController) Fetch(c *fiber.Ctx) error {
	challenges := []models.Challenge{}
	if err := cc.DB.Find(&challenges).Error; err != nil {
		return utils.InternalServerError(c, "Error fetching challenges")
	}

	return c.JSON(fiber.Map{
		"challenges": challenges,
	})
}

// FetchByCourse godoc
// @Summary List a course's challenges
// @Tags challenges
// @Produce json
// @Param courseId query string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /fetchChallengesByCourse [get]
func (cc *ChallengesController) FetchByCourse(c *fiber.Ctx) error {
	courseID := c.Query("courseId")
	if courseID == "" {
		return utils.BadRequest(c, "courseId is required")
	}

	challenges := []models.Challenge{}
	if err := cc.DB.Where("course_id = ?", courseID).Find(&challenges).Error; err != nil {
		return utils.InternalServerError(c, "Error fetching challenges")
	}

	return c.JSON(fiber.Map{
		"challenges": challenges,
	})
}

// Create godoc
// @Summary Seed challenges
// @Tags challenges
// @Accept json
// @Produce json
// @Param request body []models.Challenge true "Challenges"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /createChallenges [post]
func (cc *ChallengesController) Create(c *fiber.Ctx) error {
	var challenges []models.Challenge
	if err := c.BodyParser(&challenges); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if len(challenges) == 0 {
		return utils.BadRequest(c, "At least one challenge is required")
	}

	for i := range challenges {
		if challenges[i].CourseID == "" {
			return utils.BadRequest(c, "Challenge courseId is required")
		}
		if challenges[i].ChallengeID == "" {
			challenges[i].ChallengeID = uuid.NewString()
		}
	}

	if err := cc.DB.Create(&challenges).Error; err != nil {
		return utils.InternalServerError(c, "Could not create challenges")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"challenges": challenges,
	})
}

// Submit godoc
// @Summary Record a challenge attempt
// @Description Upserts the progress record, increments attempts and latches
// completed once the submission is correct
// @Tags challenges
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Attempt"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} map[string]interface{}
// @Router /submitChallenge [post]
func (cc *ChallengesController) Submit(c *fiber.Ctx) error {
	type submitInput struct {
		Address     string `json:"address"`
		CourseID    string `json:"courseId"`
		ChallengeID string `json:"challengeId"`
		Success     bool   `json:"success"`
	}

	var input submitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Address == "" || input.CourseID == "" || input.ChallengeID == "" {
		return utils.BadRequest(c, "Address, courseId, and challengeId are required")
	}

	progress, err := cc.upsertProgress(input.Address, input.CourseID, input.ChallengeID, func(p *models.Progress) {
		p.Attempts++
		if input.Success {
			p.Completed = true
		}
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error updating progress",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"progress": progress,
	})
}

// Hint godoc
// @Summary Record a hint use
// @Tags challenges
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Hint use"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} map[string]interface{}
// @Router /trackHint [post]
func (cc *ChallengesController) Hint(c *fiber.Ctx) error {
	type hintInput struct {
		Address     string `json:"address"`
		CourseID    string `json:"courseId"`
		ChallengeID string `json:"challengeId"`
	}

	var input hintInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Address == "" || input.CourseID == "" || input.ChallengeID == "" {
		return utils.BadRequest(c, "Address, courseId, and challengeId are required")
	}

	progress, err := cc.upsertProgress(input.Address, input.CourseID, input.ChallengeID, func(p *models.Progress) {
		p.HintsUsed++
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error updating hint usage",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"progress": progress,
	})
}

// upsertProgress loads or creates the record for the composite key and
// applies mutate before saving.
func (cc *ChallengesController) upsertProgress(address, courseID, challengeID string, mutate func(*models.Progress)) (*models.Progress, error) {
	var progress models.Progress
	err := cc.DB.Where(
		"address = ? AND course_id = ? AND challenge_id = ?",
		address, courseID, challengeID,
	).First(&progress).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = models.Progress{
			Address:     address,
			CourseID:    courseID,
			ChallengeID: challengeID,
		}
	}

	mutate(&progress)

	if err := cc.DB.Save(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}
