package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	CourseID    string                      `gorm:"unique;not null" json:"courseId"`
	Title       string                      `gorm:"not null" json:"title"`
	Description string                      `json:"description"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	ImageURL    string                      `json:"imageUrl"`
	Price       int64                       `json:"price"`
	Rewards     int64                       `json:"rewards"`
}

type Challenge struct {
	gorm.Model
	ChallengeID string `gorm:"unique;not null" json:"challengeId"`
	CourseID    string `gorm:"index;not null" json:"courseId"`
	Name        string `json:"name"`
	DefaultCode string `json:"defaultCode"`
	CorrectCode string `json:"correctCode"`
	Explanation string `json:"explanation"`
	Task        string `json:"task"`
}
