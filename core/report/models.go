package report

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Status of a server-side report-generation job.
// Transitions are strictly forward: PENDING -> RUNNING -> terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
	StatusCanceled  Status = "CANCELED"
)

func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

// Job is the client's read-only snapshot of a report-generation job.
// Once a terminal status is observed the snapshot never changes again.
type Job struct {
	ID             int       `json:"id"`
	Status         Status    `json:"status"`
	Progress       *int      `json:"progress,omitempty"` // 0-100, advisory
	ErrorMessage   string    `json:"error_message,omitempty"`
	OutputFilename string    `json:"output_filename,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Report kinds as transmitted in the creation request discriminator.
const (
	KindEnrollmentList  = "enrollment-list"
	KindGroupBulletin   = "group-bulletin"
	KindStudentBulletin = "student-bulletin"
)

// EnrollmentListRequest asks for the enrollment list of a group for a school year.
type EnrollmentListRequest struct {
	GroupID  int `json:"group_id" validate:"required,min=1"`
	PeriodID int `json:"period_id" validate:"required,min=1"`
	YearID   int `json:"year_id" validate:"required,min=1"`
}

func (r EnrollmentListRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r EnrollmentListRequest) FallbackFilename() string {
	return fmt.Sprintf("%s-g%d-p%d-y%d.pdf", KindEnrollmentList, r.GroupID, r.PeriodID, r.YearID)
}

// GroupBulletinRequest asks for the academic bulletins of a whole group for a period.
type GroupBulletinRequest struct {
	GroupID  int `json:"group_id" validate:"required,min=1"`
	PeriodID int `json:"period_id" validate:"required,min=1"`
}

func (r GroupBulletinRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r GroupBulletinRequest) FallbackFilename() string {
	return fmt.Sprintf("%s-g%d-p%d.pdf", KindGroupBulletin, r.GroupID, r.PeriodID)
}

// StudentBulletinRequest asks for a single student's academic bulletin for a period.
type StudentBulletinRequest struct {
	EnrollmentID int `json:"enrollment_id" validate:"required,min=1"`
	PeriodID     int `json:"period_id" validate:"required,min=1"`
}

func (r StudentBulletinRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r StudentBulletinRequest) FallbackFilename() string {
	return fmt.Sprintf("%s-e%d-p%d.pdf", KindStudentBulletin, r.EnrollmentID, r.PeriodID)
}

type Repository interface {
	CreateEnrollmentListJob(ctx context.Context, req EnrollmentListRequest) (Job, error)
	CreateGroupBulletinJob(ctx context.Context, req GroupBulletinRequest) (Job, error)
	CreateStudentBulletinJob(ctx context.Context, req StudentBulletinRequest) (Job, error)
	GetJob(ctx context.Context, id int) (Job, error)
	// DownloadArtifact fetches the generated artifact as an opaque blob.
	// Artifact.Filename carries the Content-Disposition name when the server sent one.
	DownloadArtifact(ctx context.Context, id int) (Artifact, error)
}
