package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"institute/backend/chain"
	"institute/backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Challenge{},
		&models.Progress{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, address string, balance int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		Address:         address,
		UserName:        "User-" + address,
		Balance:         balance,
		CoursesUnlocked: datatypes.JSONSlice[string]{"course-1"},
	}).Error)
}

func seedCourse(t *testing.T, db *gorm.DB, courseID, title string, price, rewards int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Course{
		CourseID: courseID,
		Title:    title,
		Price:    price,
		Rewards:  rewards,
	}).Error)
}

func seedProgress(t *testing.T, db *gorm.DB, address, courseID, challengeID string, attempts, hints int, completed bool) {
	t.Helper()
	require.NoError(t, db.Create(&models.Progress{
		Address:     address,
		CourseID:    courseID,
		ChallengeID: challengeID,
		Attempts:    attempts,
		HintsUsed:   hints,
		Completed:   completed,
	}).Error)
}

func loadUser(t *testing.T, db *gorm.DB, address string) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("address = ?", address).First(&user).Error)
	return user
}

// stubGateway records chain calls and can be told to fail.
type stubGateway struct {
	mintErr     error
	resumeErr   error
	mintCalls   int
	resumeCalls int
	lastResume  chain.ResumeProgress
}

func (g *stubGateway) MintTokens(ctx context.Context, address string, amount int64) (string, error) {
	g.mintCalls++
	if g.mintErr != nil {
		return "", g.mintErr
	}
	return "0xmint", nil
}

func (g *stubGateway) MintResume(ctx context.Context, address, name, description, baseURI string) (string, error) {
	return "0xresume", nil
}

func (g *stubGateway) UpdateResumeProgress(ctx context.Context, progress chain.ResumeProgress) (string, error) {
	g.resumeCalls++
	g.lastResume = progress
	if g.resumeErr != nil {
		return "", g.resumeErr
	}
	return "0xupdate", nil
}

func (g *stubGateway) QuestTokenBalance(ctx context.Context, address string) (int64, error) {
	return 0, nil
}

func TestCompleteCourseRewardAppliedOnce(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, nil)

	seedCourse(t, db, "course-1", "Aptos Basics", 0, 10)
	seedUser(t, db, "0xA", 0)
	seedProgress(t, db, "0xA", "course-1", "ch-1", 1, 0, true)

	result, err := engine.CompleteCourse(context.Background(), "0xA", "course-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.Reward)
	assert.Equal(t, "Aptos Basics", result.CourseName)
	assert.Equal(t, 1000, result.Score)
	assert.Equal(t, int64(10), result.NewBalance)

	_, err = engine.CompleteCourse(context.Background(), "0xA", "course-1")
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	user := loadUser(t, db, "0xA")
	assert.Equal(t, int64(10), user.Balance)
	assert.Equal(t, []string{"course-1"}, []string(user.CoursesCompleted))
}

func TestCompleteCourseScoreFormula(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, nil)

	seedCourse(t, db, "course-1", "Aptos Basics", 0, 10)
	seedUser(t, db, "0xA", 0)
	seedProgress(t, db, "0xA", "course-1", "ch-1", 1, 0, true)
	seedProgress(t, db, "0xA", "course-1", "ch-2", 1, 0, true)
	seedProgress(t, db, "0xA", "course-1", "ch-3", 1, 0, true)
	seedProgress(t, db, "0xA", "course-1", "ch-4", 3, 1, true)

	result, err := engine.CompleteCourse(context.Background(), "0xA", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 913, result.Score)

	user := loadUser(t, db, "0xA")
	score, ok := user.ScoreFor("course-1")
	assert.True(t, ok)
	assert.Equal(t, 913, score)
}

func TestCompleteCourseUnknownEntities(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, nil)

	seedCourse(t, db, "course-1", "Aptos Basics", 0, 10)
	seedUser(t, db, "0xA", 0)

	_, err := engine.CompleteCourse(context.Background(), "0xA", "no-such-course")
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = engine.CompleteCourse(context.Background(), "0xNobody", "course-1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user := loadUser(t, db, "0xA")
	assert.Equal(t, int64(0), user.Balance)
	assert.Empty(t, user.CoursesCompleted)
}

func TestCompleteCourseRequiresCompletedChallenges(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, nil)

	seedCourse(t, db, "course-1", "Aptos Basics", 0, 10)
	seedUser(t, db, "0xA", 0)

	_, err := engine.CompleteCourse(context.Background(), "0xA", "course-1")
	assert.ErrorIs(t, err, ErrNoChallengesCompleted)

	// Attempted but never solved counts the same as no progress.
	seedProgress(t, db, "0xA", "course-1", "ch-1", 5, 2, false)
	_, err = engine.CompleteCourse(context.Background(), "0xA", "course-1")
	assert.ErrorIs(t, err, ErrNoChallengesCompleted)

	user := loadUser(t, db, "0xA")
	assert.Equal(t, int64(0), user.Balance)
}

func TestCompleteCourseBalanceAccumulates(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, nil)

	seedCourse(t, db, "course-1", "Aptos Basics", 0, 10)
	seedCourse(t, db, "course-2", "Move Deep Dive", 0, 25)
	seedUser(t, db, "0xA", 0)
	seedProgress(t, db, "0xA", "course-1", "ch-1", 1, 0, true)
	seedProgress(t, db, "0xA", "course-2", "ch-2", 1, 0, true)

	_, err := engine.CompleteCourse(context.Background(), "0xA", "course-1")
	require.NoError(t, err)
	result, err := engine.CompleteCourse(context.Background(), "0xA", "course-2")
	require.NoError(t, err)

	assert.Equal(t, int64(35), result.NewBalance)
	user := loadUser(t, db, "0xA")
	assert.Equal(t, int64(35), user.Balance)
	assert.Len(t, user.CoursesCompleted, 2)
}

func TestCompleteCourseChainFailureAborts(t *testing.T) {
	db := newTestDB(t)
	gateway := &stubGateway{mintErr: errors.New("relay down")}
	engine := NewEngine(db, gateway)

	seedCourse(t, db, "course-1", "Aptos Basics", 0, 10)
	seedUser(t, db, "0xA", 0)
	seedProgress(t, db, "0xA", "course-1", "ch-1", 1, 0, true)

	_, err := engine.CompleteCourse(context.Background(), "0xA", "course-1")
	require.Error(t, err)
	assert.Equal(t, 1, gateway.mintCalls)
	assert.Equal(t, 0, gateway.resumeCalls)

	// No local mutation on a chain failure.
	user := loadUser(t, db, "0xA")
	assert.Equal(t, int64(0), user.Balance)
	assert.Empty(t, user.CoursesCompleted)

	// The completion can be retried once the gateway recovers.
	gateway.mintErr = nil
	result, err := engine.CompleteCourse(context.Background(), "0xA", "course-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.NewBalance)
	assert.Equal(t, 1, gateway.resumeCalls)
}

func TestCompleteCourseReportsResumeProgress(t *testing.T) {
	db := newTestDB(t)
	gateway := &stubGateway{}
	engine := NewEngine(db, gateway)

	seedCourse(t, db, "course-1", "Aptos Basics", 0, 10)
	seedUser(t, db, "0xA", 0)
	seedProgress(t, db, "0xA", "course-1", "ch-1", 2, 1, true)
	seedProgress(t, db, "0xA", "course-1", "ch-2", 1, 0, true)

	result, err := engine.CompleteCourse(context.Background(), "0xA", "course-1")
	require.NoError(t, err)

	assert.Equal(t, chain.ResumeProgress{
		Address:    "0xA",
		CourseID:   "course-1",
		CourseName: "Aptos Basics",
		Challenges: 2,
		Score:      result.Score,
		Attempts:   3,
		Hints:      1,
	}, gateway.lastResume)
}

func TestCompleteCourseConcurrentRequests(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, nil)

	seedCourse(t, db, "course-1", "Aptos Basics", 0, 10)
	seedUser(t, db, "0xA", 0)
	seedProgress(t, db, "0xA", "course-1", "ch-1", 1, 0, true)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.CompleteCourse(context.Background(), "0xA", "course-1")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyCompleted)
		}
	}
	assert.Equal(t, 1, successes)

	user := loadUser(t, db, "0xA")
	assert.Equal(t, int64(10), user.Balance)
	assert.Equal(t, []string{"course-1"}, []string(user.CoursesCompleted))
}

func TestUnlockCourse(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, nil)

	seedCourse(t, db, "course-2", "Move Deep Dive", 30, 50)
	seedUser(t, db, "0xA", 100)

	result, err := engine.UnlockCourse("0xA", "course-2", 30)
	require.NoError(t, err)
	assert.Equal(t, int64(70), result.Balance)
	assert.Contains(t, result.CoursesUnlocked, "course-2")

	_, err = engine.UnlockCourse("0xA", "course-2", 30)
	assert.ErrorIs(t, err, ErrAlreadyUnlocked)
}

func TestUnlockCourseInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, nil)

	seedCourse(t, db, "course-2", "Move Deep Dive", 500, 50)
	seedUser(t, db, "0xA", 10)

	_, err := engine.UnlockCourse("0xA", "course-2", 500)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	user := loadUser(t, db, "0xA")
	assert.Equal(t, int64(10), user.Balance)
	assert.NotContains(t, []string(user.CoursesUnlocked), "course-2")
}

func TestUnlockCoursePriceMismatch(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, nil)

	seedCourse(t, db, "course-2", "Move Deep Dive", 30, 50)
	seedUser(t, db, "0xA", 100)

	_, err := engine.UnlockCourse("0xA", "course-2", 1)
	assert.ErrorIs(t, err, ErrPriceMismatch)

	user := loadUser(t, db, "0xA")
	assert.Equal(t, int64(100), user.Balance)
}
