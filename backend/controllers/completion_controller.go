package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"institute/backend/scoring"
	"institute/backend/utils"
)

type CompletionController struct {
	Engine *scoring.Engine
	Logger *log.Logger
}

func NewCompletionController(engine *scoring.Engine, logger *log.Logger) *CompletionController {
	return &CompletionController{Engine: engine, Logger: logger}
}

// CompleteCourse godoc
// @Summary Complete a course and issue the reward
// @Description Computes the course score from the user's challenge progress
// and credits the reward exactly once
// @Tags courses
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "address and courseId"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} map[string]interface{}
// @Router /completeCourse [post]
func (cc *CompletionController) CompleteCourse(c *fiber.Ctx) error {
	type completeInput struct {
		Address  string `json:"address"`
		CourseID string `json:"courseId"`
	}

	var input completeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Address == "" || input.CourseID == "" {
		return utils.BadRequest(c, "Address and courseId are required")
	}

	result, err := cc.Engine.CompleteCourse(c.Context(), input.Address, input.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, scoring.ErrCourseNotFound):
			return utils.NotFound(c, "Course not found")
		case errors.Is(err, scoring.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, scoring.ErrAlreadyCompleted):
			return utils.BadRequest(c, "Course already completed")
		case errors.Is(err, scoring.ErrNoChallengesCompleted):
			return utils.BadRequest(c, "No challenges completed")
		default:
			cc.Logger.Printf("Error completing course %s for %s: %v", input.CourseID, input.Address, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Error completing course",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"reward":     result.Reward,
		"courseName": result.CourseName,
		"score":      result.Score,
		"newBalance": result.NewBalance,
		"message":    "Course completed and reward issued",
	})
}
