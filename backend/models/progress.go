package models

import "gorm.io/gorm"

// Progress tracks a user's state for a single challenge. There is at most
// one record per (address, courseId, challengeId).
type Progress struct {
	gorm.Model
	Address     string `gorm:"uniqueIndex:idx_progress_key;not null" json:"address"`
	CourseID    string `gorm:"uniqueIndex:idx_progress_key;not null" json:"courseId"`
	ChallengeID string `gorm:"uniqueIndex:idx_progress_key;not null" json:"challengeId"`
	Attempts    int    `gorm:"default:0" json:"attempts"`
	HintsUsed   int    `gorm:"default:0" json:"hintsUsed"`
	Completed   bool   `gorm:"default:false" json:"completed"`
}
