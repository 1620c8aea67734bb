package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"institute/backend/config"
	"institute/backend/models"
)

type HireController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewHireController(db *gorm.DB, cfg *config.Config) *HireController {
	return &HireController{DB: db, Cfg: cfg}
}

type hireChallenge struct {
	ChallengeID string `json:"challengeId"`
	Name        string `json:"name"`
	Attempts    int    `json:"attempts"`
	HintsUsed   int    `json:"hintsUsed"`
	Completed   bool   `json:"completed"`
}

type hireCourse struct {
	CourseID    string          `json:"courseId"`
	CourseTitle string          `json:"courseTitle"`
	Score       int             `json:"score"`
	Challenges  []hireChallenge `json:"challenges"`
}

type hireUser struct {
	Address  string       `json:"address"`
	UserName string       `json:"userName"`
	Balance  int64        `json:"balance"`
	Courses  []hireCourse `json:"courses"`
}

// GetUsersWithCompletedCourses godoc
// @Summary Hiring directory
// @Description Lists users with at least one completed course, with their
// per-challenge statistics and recorded course scores
// @Tags hire
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /getUsersWithCompletedCourses [get]
func (hc *HireController) GetUsersWithCompletedCourses(c *fiber.Ctx) error {
	var users []models.User
	if err := hc.DB.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching users",
		})
	}

	directory := []hireUser{}
	for _, user := range users {
		if len(user.CoursesCompleted) == 0 {
			continue
		}

		var progress []models.Progress
		if err := hc.DB.Where("address = ?", user.Address).Find(&progress).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Error fetching progress",
			})
		}
		progressByChallenge := map[string]models.Progress{}
		for _, p := range progress {
			progressByChallenge[p.ChallengeID] = p
		}

		entry := hireUser{
			Address:  user.Address,
			UserName: user.UserName,
			Balance:  user.Balance,
			Courses:  []hireCourse{},
		}

		for _, courseID := range user.CoursesCompleted {
			var course models.Course
			courseTitle := "Unknown Course"
			if err := hc.DB.Where("course_id = ?", courseID).First(&course).Error; err == nil {
				courseTitle = course.Title
			}

			var challenges []models.Challenge
			if err := hc.DB.Where("course_id = ?", courseID).Find(&challenges).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": "Error fetching challenges",
				})
			}

			courseEntry := hireCourse{
				CourseID:    courseID,
				CourseTitle: courseTitle,
				Challenges:  []hireChallenge{},
			}
			courseEntry.Score, _ = user.ScoreFor(courseID)

			for _, challenge := range challenges {
				p := progressByChallenge[challenge.ChallengeID]
				courseEntry.Challenges = append(courseEntry.Challenges, hireChallenge{
					ChallengeID: challenge.ChallengeID,
					Name:        challenge.Name,
					Attempts:    p.Attempts,
					HintsUsed:   p.HintsUsed,
					Completed:   p.Completed,
				})
			}

			entry.Courses = append(entry.Courses, courseEntry)
		}

		directory = append(directory, entry)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   directory,
	})
}
