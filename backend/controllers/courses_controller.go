package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"institute/backend/config"
	"institute/backend/models"
	"institute/backend/scoring"
	"institute/backend/utils"
)

type CoursesController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Engine *scoring.Engine
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, engine *scoring.Engine) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Engine: engine}
}

// Fetch godoc
// @Summary List all courses
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /fetchCourses [get]
func (cc *CoursesController) Fetch(c *fiber.Ctx) error {
	courses := []models.Course{}
	if err := cc.DB.Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Error fetching courses")
	}

	return c.JSON(fiber.Map{
		"courses": courses,
	})
}

// Create godoc
// @Summary Seed courses
// @Description Bulk-inserts the course catalog; ids are generated when absent
// @Tags courses
// @Accept json
// @Produce json
// @Param request body []models.Course true "Courses"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /createCourses [post]
func (cc *CoursesController) Create(c *fiber.Ctx) error {
	var courses []models.Course
	if err := c.BodyParser(&courses); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if len(courses) == 0 {
		return utils.BadRequest(c, "At least one course is required")
	}

	for i := range courses {
		if courses[i].CourseID == "" {
			courses[i].CourseID = uuid.NewString()
		}
		if courses[i].Title == "" {
			return utils.BadRequest(c, "Course title is required")
		}
		if courses[i].Price < 0 || courses[i].Rewards < 0 {
			return utils.BadRequest(c, "Price and rewards must not be negative")
		}
	}

	if err := cc.DB.Create(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not create courses")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"courses": courses,
	})
}

// Unlock godoc
// @Summary Unlock a course
// @Description Debits the course price from the user's balance and adds the
// course to the unlocked set
// @Tags courses
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "courseId and price"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Security CookieAuth
// @Router /unlockCourse [post]
func (cc *CoursesController) Unlock(c *fiber.Ctx) error {
	address, err := utils.ExtractAddressFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	type unlockInput struct {
		CourseID string `json:"courseId"`
		Price    int64  `json:"price"`
	}

	var input unlockInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request parameters",
		})
	}
	if input.CourseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request parameters",
		})
	}

	result, err := cc.Engine.UnlockCourse(address, input.CourseID, input.Price)
	if err != nil {
		switch {
		case errors.Is(err, scoring.ErrCourseNotFound), errors.Is(err, scoring.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		case errors.Is(err, scoring.ErrAlreadyUnlocked):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Course already unlocked",
			})
		case errors.Is(err, scoring.ErrPriceMismatch), errors.Is(err, scoring.ErrInsufficientBalance):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Internal server error",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Course unlocked successfully",
		"user": fiber.Map{
			"balance":         result.Balance,
			"coursesUnlocked": result.CoursesUnlocked,
		},
	})
}
