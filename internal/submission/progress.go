package submission

import (
	"strings"

	"ClassroomAnswerLog/internal/models"
)

// StudentProgress tells whether a student has answered a prompt.
type StudentProgress struct {
	Student   string `json:"student"`
	Completed bool   `json:"completed"`
	Answers   int    `json:"answers"`
}

type Progress struct {
	PromptID     string            `json:"prompt_id"`
	Students     []StudentProgress `json:"students"`
	AllCompleted bool              `json:"all_completed"`
}

// Progress reports, from the local ledger only, which of the given students
// have at least one submission for promptID. Names compare case-insensitively
// after trimming.
func (c *Coordinator) Progress(promptID string, students []string) (Progress, error) {
	records, err := c.local.ReadAll()
	if err != nil {
		return Progress{}, err
	}

	counts := make(map[string]int)
	for _, r := range records {
		if r.PromptID != promptID {
			continue
		}
		counts[normalizeName(r.StudentName)]++
	}

	p := Progress{
		PromptID:     promptID,
		Students:     make([]StudentProgress, 0, len(students)),
		AllCompleted: len(students) > 0,
	}
	for _, s := range students {
		n := counts[normalizeName(s)]
		p.Students = append(p.Students, StudentProgress{Student: s, Completed: n > 0, Answers: n})
		if n == 0 {
			p.AllCompleted = false
		}
	}
	return p, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Records returns every locally persisted submission in append order.
func (c *Coordinator) Records() ([]models.SubmissionRecord, error) {
	return c.local.ReadAll()
}
