package sheet

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of an import job.
type JobStatus string

const (
	JobInProgress JobStatus = "in_progress"
	JobDone       JobStatus = "done"
	JobFailed     JobStatus = "failed"
)

// Counter names reported by import jobs.
const (
	CountRowsRead          = "rows read"
	CountRowsValidated     = "rows validated"
	CountRowsSkipped       = "rows skipped"
	CountMissingName       = "missing name"
	CountInvalidNumber     = "invalid registry number"
	CountInvalidBirthDate  = "invalid birth date"
	CountMissingCode       = "missing confirmation code"
	CountMissingDate       = "missing transaction date"
	CountInvalidDate       = "invalid transaction date"
	CountAlreadyProcessed  = "already processed"
	CountIdentityConflicts = "identity conflict"
	CountPlayersCreated    = "players created"
	CountPlayersMatched    = "players matched"
	CountRowsImported      = "rows processed successfully"
)

// JobStats reports the progress and outcome of an import job.
type JobStats struct {
	ID              string         `json:"id"`
	Description     string         `json:"description"`
	Status          JobStatus      `json:"status"`
	CurrentActivity string         `json:"current_activity"`
	ToDo            int            `json:"to_do"`
	Counters        map[string]int `json:"counters"`
	Error           string         `json:"error,omitempty"`
	StartedAt       time.Time      `json:"started_at"`
	FinishedAt      time.Time      `json:"finished_at,omitempty"`
	Duration        string         `json:"duration,omitempty"`

	mu sync.Mutex
}

// NewJobStats starts tracking a job.
func NewJobStats(description string) *JobStats {
	return &JobStats{
		ID:          uuid.NewString(),
		Description: description,
		Status:      JobInProgress,
		Counters:    make(map[string]int),
		StartedAt:   time.Now().UTC(),
	}
}

// Bump increments a counter.
func (s *JobStats) Bump(counter string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Counters[counter]++
}

// Count returns a counter's value.
func (s *JobStats) Count(counter string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Counters[counter]
}

// SetToDo sets the number of rows left to import.
func (s *JobStats) SetToDo(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ToDo = n
}

// AddToDo adjusts the number of rows left to import.
func (s *JobStats) AddToDo(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ToDo += delta
}

// SetActivity records what the job is doing now.
func (s *JobStats) SetActivity(activity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrentActivity = activity
}

// Finish marks the job done, or failed when err is not nil.
func (s *JobStats) Finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FinishedAt = time.Now().UTC()
	s.Duration = s.FinishedAt.Sub(s.StartedAt).String()
	s.CurrentActivity = ""
	if err != nil {
		s.Status = JobFailed
		s.Error = err.Error()
		return
	}
	s.Status = JobDone
}

// Snapshot returns a copy that is safe to read while the job runs.
func (s *JobStats) Snapshot() *JobStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	counters := make(map[string]int, len(s.Counters))
	for k, v := range s.Counters {
		counters[k] = v
	}
	return &JobStats{
		ID:              s.ID,
		Description:     s.Description,
		Status:          s.Status,
		CurrentActivity: s.CurrentActivity,
		ToDo:            s.ToDo,
		Counters:        counters,
		Error:           s.Error,
		StartedAt:       s.StartedAt,
		FinishedAt:      s.FinishedAt,
		Duration:        s.Duration,
	}
}
