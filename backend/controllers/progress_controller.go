package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"institute/backend/config"
	"institute/backend/models"
	"institute/backend/utils"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// GetUserProgress godoc
// @Summary Get a user's progress in a course
// @Description Returns the progress records and the completed-challenge count
// @Tags progress
// @Produce json
// @Param address query string true "Wallet address"
// @Param courseId query string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} map[string]interface{}
// @Router /getUserProgress [get]
func (pc *ProgressController) GetUserProgress(c *fiber.Ctx) error {
	address := c.Query("address")
	courseID := c.Query("courseId")
	if address == "" || courseID == "" {
		return utils.BadRequest(c, "Address and courseId are required")
	}

	progress := []models.Progress{}
	if err := pc.DB.Where("address = ? AND course_id = ?", address, courseID).Find(&progress).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching progress",
		})
	}

	completedChallenges := 0
	for _, p := range progress {
		if p.Completed {
			completedChallenges++
		}
	}

	return c.JSON(fiber.Map{
		"success":             true,
		"progress":            progress,
		"completedChallenges": completedChallenges,
	})
}
