package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseScore is one entry of a user's per-course score board.
type CourseScore struct {
	CourseID string `json:"courseId"`
	Score    int    `json:"score"`
}

type User struct {
	gorm.Model
	Address          string                           `gorm:"unique;not null" json:"address"`
	UserName         string                           `gorm:"unique;not null" json:"userName"`
	Balance          int64                            `gorm:"default:0" json:"balance"`
	Twitter          string                           `json:"twitter"`
	Github           string                           `json:"github"`
	Website          string                           `json:"website"`
	CoursesUnlocked  datatypes.JSONSlice[string]      `json:"coursesUnlocked"`
	CoursesCompleted datatypes.JSONSlice[string]      `json:"coursesCompleted"`
	CourseScores     datatypes.JSONSlice[CourseScore] `json:"courseScores"`
}

func (u *User) HasUnlocked(courseID string) bool {
	for _, id := range u.CoursesUnlocked {
		if id == courseID {
			return true
		}
	}
	return false
}

func (u *User) HasCompleted(courseID string) bool {
	for _, id := range u.CoursesCompleted {
		if id == courseID {
			return true
		}
	}
	return false
}

// ScoreFor returns the recorded score for a course, if any.
func (u *User) ScoreFor(courseID string) (int, bool) {
	for _, s := range u.CourseScores {
		if s.CourseID == courseID {
			return s.Score, true
		}
	}
	return 0, false
}

// SetCourseScore overwrites an existing score entry for the course or
// appends a new one.
func (u *User) SetCourseScore(courseID string, score int) {
	for i := range u.CourseScores {
		if u.CourseScores[i].CourseID == courseID {
			u.CourseScores[i].Score = score
			return
		}
	}
	u.CourseScores = append(u.CourseScores, CourseScore{CourseID: courseID, Score: score})
}
