package service

import (
	"testing"
	"time"

	"github.com/tahsinkabir/examly/internal/model"
	"github.com/tahsinkabir/examly/internal/repository"
	"gorm.io/gorm"
)

func seedResult(t *testing.T, db *gorm.DB, userID, examID uint, subjectID *uint, score, percentage float64, timeTaken int) {
	t.Helper()
	res := model.Result{
		UserID:      userID,
		ExamID:      examID,
		SubjectID:   subjectID,
		Score:       score,
		TotalMarks:  100,
		Percentage:  percentage,
		TimeTaken:   timeTaken,
		SubmittedAt: time.Now(),
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("seed result: %v", err)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(repository.NewResultRepository(db))

	const examID = 42
	seedResult(t, db, 1, examID, nil, 90, 90, 100) // A
	seedResult(t, db, 2, examID, nil, 90, 90, 80)  // B: same score, faster
	seedResult(t, db, 3, examID, nil, 95, 95, 200) // C: highest score
	seedResult(t, db, 4, 7, nil, 100, 100, 10)     // different exam, excluded

	entries, err := svc.Leaderboard(examID)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries length = %d, want 3", len(entries))
	}

	wantOrder := []uint{3, 2, 1} // C (95), B (90, 80s), A (90, 100s)
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Errorf("rank %d user = %d, want %d", i+1, entries[i].UserID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("entries[%d].Rank = %d, want %d", i, entries[i].Rank, i+1)
		}
	}
}

func TestLeaderboardCapsAtTwenty(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(repository.NewResultRepository(db))

	const examID = 1
	for i := 1; i <= 25; i++ {
		seedResult(t, db, uint(i), examID, nil, float64(i), float64(i), 60)
	}

	entries, err := svc.Leaderboard(examID)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(entries) != 20 {
		t.Errorf("entries length = %d, want 20", len(entries))
	}
	if entries[0].Score != 25 {
		t.Errorf("top score = %v, want 25", entries[0].Score)
	}
}

func TestUserAnalyticsGroupsBySubject(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(repository.NewResultRepository(db))

	mathID, physicsID := uint(1), uint(2)
	seedResult(t, db, 5, 10, &mathID, 80, 80, 60)
	seedResult(t, db, 5, 11, &mathID, 60, 60, 60)
	seedResult(t, db, 5, 12, &physicsID, 90, 90, 60)
	seedResult(t, db, 6, 10, &mathID, 100, 100, 60) // another user, excluded

	analytics, err := svc.UserAnalytics(5)
	if err != nil {
		t.Fatalf("UserAnalytics: %v", err)
	}
	if len(analytics) != 2 {
		t.Fatalf("analytics length = %d, want 2", len(analytics))
	}

	bySubject := make(map[uint]struct {
		total int
		avg   float64
		best  float64
	})
	for _, a := range analytics {
		if a.SubjectID == nil {
			t.Fatal("nil subject id in rollup")
		}
		bySubject[*a.SubjectID] = struct {
			total int
			avg   float64
			best  float64
		}{a.TotalExams, a.AvgPercentage, a.BestPercentage}
	}

	math := bySubject[mathID]
	if math.total != 2 || math.avg != 70 || math.best != 80 {
		t.Errorf("math rollup = %+v, want total=2 avg=70 best=80", math)
	}
	physics := bySubject[physicsID]
	if physics.total != 1 || physics.avg != 90 || physics.best != 90 {
		t.Errorf("physics rollup = %+v, want total=1 avg=90 best=90", physics)
	}
}

func TestAdminAnalyticsGroupsByExam(t *testing.T) {
	db := newTestDB(t)
	svc := NewResultService(repository.NewResultRepository(db))

	seedResult(t, db, 1, 100, nil, 80, 80, 60)
	seedResult(t, db, 2, 100, nil, 40, 40, 60)
	seedResult(t, db, 3, 200, nil, 90, 90, 60)

	analytics, err := svc.AdminAnalytics()
	if err != nil {
		t.Fatalf("AdminAnalytics: %v", err)
	}
	if len(analytics) != 2 {
		t.Fatalf("analytics length = %d, want 2", len(analytics))
	}

	byExam := make(map[uint]struct {
		attempts int
		avg      float64
		highest  float64
	})
	for _, a := range analytics {
		byExam[a.ExamID] = struct {
			attempts int
			avg      float64
			highest  float64
		}{a.TotalAttempts, a.AvgPercentage, a.HighestPercentage}
	}

	e100 := byExam[100]
	if e100.attempts != 2 || e100.avg != 60 || e100.highest != 80 {
		t.Errorf("exam 100 rollup = %+v, want attempts=2 avg=60 highest=80", e100)
	}
	e200 := byExam[200]
	if e200.attempts != 1 || e200.avg != 90 || e200.highest != 90 {
		t.Errorf("exam 200 rollup = %+v, want attempts=1 avg=90 highest=90", e200)
	}
}
