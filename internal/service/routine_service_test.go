package service

import (
	"errors"
	"testing"
	"time"

	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/model"
	"github.com/tahsinkabir/examly/internal/repository"
	"gorm.io/gorm"
)

func newRoutineService(db *gorm.DB) RoutineService {
	return NewRoutineService(repository.NewRoutineRepository(db), repository.NewSubjectRepository(db))
}

func routineReq(subjectID uint, date time.Time, duration int) dto.RoutineCreateDTO {
	return dto.RoutineCreateDTO{
		Title:     "Weekly sitting",
		SubjectID: subjectID,
		Date:      date,
		StartTime: "10:00",
		Duration:  duration,
	}
}

func TestCreateRoutineDerivesStatus(t *testing.T) {
	db := newTestDB(t)
	exam, _ := seedExam(t, db, 100, 10, 0)
	svc := newRoutineService(db)
	subjectID := subjectIDOf(t, db, exam)

	cases := []struct {
		name string
		date time.Time
		want string
	}{
		{"future", time.Now().Add(48 * time.Hour), model.RoutineStatusUpcoming},
		{"in window", time.Now().Add(-10 * time.Minute), model.RoutineStatusRunning},
		{"past", time.Now().Add(-3 * time.Hour), model.RoutineStatusCompleted},
	}
	for _, tc := range cases {
		routine, err := svc.Create(routineReq(subjectID, tc.date, 60))
		if err != nil {
			t.Fatalf("Create(%s): %v", tc.name, err)
		}
		if routine.Status != tc.want {
			t.Errorf("%s: status = %q, want %q", tc.name, routine.Status, tc.want)
		}
	}
}

func TestCreateRoutineUnknownSubject(t *testing.T) {
	db := newTestDB(t)
	svc := newRoutineService(db)

	_, err := svc.Create(routineReq(9999, time.Now().Add(time.Hour), 60))
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Fatalf("Create error = %v, want ErrSubjectNotFound", err)
	}
}

func TestUpcomingExcludesPastSittings(t *testing.T) {
	db := newTestDB(t)
	exam, _ := seedExam(t, db, 100, 10, 0)
	svc := newRoutineService(db)
	subjectID := subjectIDOf(t, db, exam)

	later, err := svc.Create(routineReq(subjectID, time.Now().Add(72*time.Hour), 60))
	if err != nil {
		t.Fatalf("Create later: %v", err)
	}
	soon, err := svc.Create(routineReq(subjectID, time.Now().Add(24*time.Hour), 60))
	if err != nil {
		t.Fatalf("Create soon: %v", err)
	}
	if _, err := svc.Create(routineReq(subjectID, time.Now().Add(-24*time.Hour), 60)); err != nil {
		t.Fatalf("Create past: %v", err)
	}

	upcoming, err := svc.Upcoming()
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("upcoming length = %d, want 2", len(upcoming))
	}
	// Chronological order: the sooner sitting first.
	if upcoming[0].ID != soon.ID || upcoming[1].ID != later.ID {
		t.Errorf("upcoming order = [%d, %d], want [%d, %d]", upcoming[0].ID, upcoming[1].ID, soon.ID, later.ID)
	}
}

func TestRoutineGetUpdateDelete(t *testing.T) {
	db := newTestDB(t)
	exam, _ := seedExam(t, db, 100, 10, 0)
	svc := newRoutineService(db)
	subjectID := subjectIDOf(t, db, exam)

	created, err := svc.Create(routineReq(subjectID, time.Now().Add(time.Hour), 60))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	fetched, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.Title != "Weekly sitting" || fetched.StartTime != "10:00" {
		t.Errorf("fetched = %+v", fetched)
	}

	req := routineReq(subjectID, time.Now().Add(-3*time.Hour), 30)
	req.Title = "Rescheduled sitting"
	updated, err := svc.Update(created.ID, req)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Rescheduled sitting" {
		t.Errorf("title = %q after update", updated.Title)
	}
	if updated.Status != model.RoutineStatusCompleted {
		t.Errorf("status = %q, want completed after moving into the past", updated.Status)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, ErrRoutineNotFound) {
		t.Fatalf("Get after delete error = %v, want ErrRoutineNotFound", err)
	}
}

func subjectIDOf(t *testing.T, db *gorm.DB, exam *model.Exam) uint {
	t.Helper()
	var chapter model.Chapter
	if err := db.First(&chapter, exam.ChapterID).Error; err != nil {
		t.Fatalf("load chapter: %v", err)
	}
	return chapter.SubjectID
}
