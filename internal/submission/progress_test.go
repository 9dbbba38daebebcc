package submission

import (
	"testing"
	"time"

	"ClassroomAnswerLog/internal/models"
)

func TestProgress(t *testing.T) {
	ts := time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC)
	local := &fakeLocal{records: []models.SubmissionRecord{
		models.NewRecordAt(ts, "Soren", "puzzle_1a", "13/8"),
		models.NewRecordAt(ts, " soren ", "puzzle_1a", "21/13"),
		models.NewRecordAt(ts, "Ayushi", "puzzle_2", "34/21"),
	}}
	c := NewCoordinator(local, nil)

	p, err := c.Progress("puzzle_1a", []string{"Soren", "Ayushi"})
	if err != nil {
		t.Fatal(err)
	}
	if p.AllCompleted {
		t.Error("Ayushi has not answered puzzle_1a")
	}
	if !p.Students[0].Completed || p.Students[0].Answers != 2 {
		t.Errorf("unexpected progress for Soren: %+v", p.Students[0])
	}
	if p.Students[1].Completed {
		t.Errorf("unexpected progress for Ayushi: %+v", p.Students[1])
	}

	local.records = append(local.records, models.NewRecordAt(ts, "Ayushi", "puzzle_1a", "13/8"))
	p, err = c.Progress("puzzle_1a", []string{"Soren", "Ayushi"})
	if err != nil {
		t.Fatal(err)
	}
	if !p.AllCompleted {
		t.Errorf("expected both students completed: %+v", p)
	}
}

func TestProgress_EmptyRoster(t *testing.T) {
	c := NewCoordinator(&fakeLocal{}, nil)
	p, err := c.Progress("p1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.AllCompleted || len(p.Students) != 0 {
		t.Errorf("empty roster must not report completion: %+v", p)
	}
}
