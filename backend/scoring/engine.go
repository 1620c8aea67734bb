package scoring

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"institute/backend/chain"
	"institute/backend/models"
)

// Business-rule rejections surfaced by the engine. Controllers map these to
// HTTP statuses; anything else is an infrastructure error.
var (
	ErrCourseNotFound        = errors.New("course not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrAlreadyCompleted      = errors.New("course already completed")
	ErrNoChallengesCompleted = errors.New("no challenges completed")
	ErrAlreadyUnlocked       = errors.New("course already unlocked")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrPriceMismatch         = errors.New("price does not match course price")
)

// Engine owns every mutation of a user's balance, completed-course set and
// score board. Requests for the same address are serialized, so the
// "not already completed" check and the reward write cannot race.
type Engine struct {
	db    *gorm.DB
	chain chain.Gateway // nil when on-chain effects are disabled
	locks addressLocks
}

func NewEngine(db *gorm.DB, gateway chain.Gateway) *Engine {
	return &Engine{db: db, chain: gateway}
}

// CompletionResult is the outcome of a successful course completion.
type CompletionResult struct {
	Reward     int64
	CourseName string
	Score      int
	NewBalance int64
}

// CompleteCourse verifies the completion preconditions in order, computes the
// course score and grants the reward exactly once. When the chain gateway is
// configured, the reward mint and the resume update run before the local
// write; either failing aborts the whole operation with no local mutation.
func (e *Engine) CompleteCourse(ctx context.Context, address, courseID string) (*CompletionResult, error) {
	unlock := e.locks.lock(address)
	defer unlock()

	var course models.Course
	if err := e.db.Where("course_id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var user models.User
	if err := e.db.Where("address = ?", address).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.HasCompleted(courseID) {
		return nil, ErrAlreadyCompleted
	}

	var records []models.Progress
	if err := e.db.Where("address = ? AND course_id = ?", address, courseID).Find(&records).Error; err != nil {
		return nil, err
	}

	breakdown := Compute(records)
	if breakdown.CompletedChallenges == 0 {
		return nil, ErrNoChallengesCompleted
	}

	if e.chain != nil {
		if _, err := e.chain.MintTokens(ctx, address, course.Rewards); err != nil {
			return nil, fmt.Errorf("minting reward: %w", err)
		}
		if _, err := e.chain.UpdateResumeProgress(ctx, chain.ResumeProgress{
			Address:    address,
			CourseID:   courseID,
			CourseName: course.Title,
			Challenges: breakdown.CompletedChallenges,
			Score:      breakdown.Score,
			Attempts:   breakdown.TotalAttempts,
			Hints:      breakdown.TotalHints,
		}); err != nil {
			return nil, fmt.Errorf("updating resume: %w", err)
		}
	}

	user.CoursesCompleted = append(user.CoursesCompleted, courseID)
	user.Balance += course.Rewards
	user.SetCourseScore(courseID, breakdown.Score)

	if err := e.db.Save(&user).Error; err != nil {
		return nil, err
	}

	return &CompletionResult{
		Reward:     course.Rewards,
		CourseName: course.Title,
		Score:      breakdown.Score,
		NewBalance: user.Balance,
	}, nil
}

// UnlockResult is the user state returned after an unlock.
type UnlockResult struct {
	Balance         int64
	CoursesUnlocked []string
}

// UnlockCourse debits the course price and adds the course to the user's
// unlocked set. The stored course price is authoritative; the price quoted
// by the client must match it.
func (e *Engine) UnlockCourse(address, courseID string, price int64) (*UnlockResult, error) {
	unlock := e.locks.lock(address)
	defer unlock()

	var course models.Course
	if err := e.db.Where("course_id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var user models.User
	if err := e.db.Where("address = ?", address).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.HasUnlocked(courseID) {
		return nil, ErrAlreadyUnlocked
	}
	if price != course.Price {
		return nil, ErrPriceMismatch
	}
	if user.Balance < course.Price {
		return nil, ErrInsufficientBalance
	}

	user.Balance -= course.Price
	user.CoursesUnlocked = append(user.CoursesUnlocked, courseID)

	if err := e.db.Save(&user).Error; err != nil {
		return nil, err
	}

	return &UnlockResult{
		Balance:         user.Balance,
		CoursesUnlocked: user.CoursesUnlocked,
	}, nil
}
