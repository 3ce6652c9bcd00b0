package main

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kampushq/kampus/core/report"
	"github.com/kampushq/kampus/core/student"
	"github.com/kampushq/kampus/core/user"
)

// account pairs an API user with its bcrypt-hashed password and the unread
// notifications the mock serves for it.
type account struct {
	user.User
	passwordHash []byte
	unread       int
}

// jobRecord is a report job plus the status script it walks through: each
// status fetch advances one step until the last (terminal) entry, which then
// repeats forever.
type jobRecord struct {
	job    report.Job
	script []report.Status
	step   int
}

type store struct {
	mu       sync.RWMutex
	accounts map[string]*account
	students []student.Student
	jobs     map[int]*jobRecord
	jobSeq   int
}

func newStore() *store {
	s := &store{
		accounts: make(map[string]*account),
		jobs:     make(map[int]*jobRecord),
	}
	s.seed()
	return s
}

func (s *store) seed() {
	now := time.Now().UTC()
	seedUsers := []struct {
		id       int
		name     string
		username string
		roles    []string
		unread   int
	}{
		{1, "Maria Secretaria", "secretaria", []string{user.RoleStaffSecretary}, 4},
		{2, "Pedro Profesor", "profe", []string{user.RoleTeacher}, 2},
		{3, "Ana Acudiente", "acudiente", []string{user.RoleParent}, 0},
	}
	for _, su := range seedUsers {
		hash, _ := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.MinCost)
		s.accounts[su.username] = &account{
			User: user.User{
				ID:        su.id,
				Name:      su.name,
				Username:  su.username,
				Email:     su.username + "@kampus.test",
				IsActive:  true,
				Roles:     su.roles,
				CreatedAt: now,
				UpdatedAt: now,
			},
			passwordHash: hash,
			unread:       su.unread,
		}
	}

	names := []string{
		"Ana Perez", "Luis Gomez", "Sofia Diaz", "Carlos Ruiz", "Elena Castro",
		"Jorge Molina", "Lucia Vargas", "Pablo Herrera", "Carmen Silva", "Diego Rios",
	}
	for i := 0; i < 30; i++ {
		s.students = append(s.students, student.Student{
			ID:        i + 1,
			Name:      fmt.Sprintf("%s %d", names[i%len(names)], i+1),
			Document:  fmt.Sprintf("TI-%05d", 10000+i),
			GroupID:   (i % 3) + 1,
			GroupName: fmt.Sprintf("Grupo %d", (i%3)+1),
			IsActive:  i%7 != 0,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
}

// seedPassword is the password of every seeded account.
const seedPassword = "kampus123"

func (s *store) authenticate(username, password string) (user.User, bool) {
	s.mu.RLock()
	acct, ok := s.accounts[strings.ToLower(username)]
	s.mu.RUnlock()
	if !ok || !acct.IsActive {
		return user.User{}, false
	}
	if bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)) != nil {
		return user.User{}, false
	}
	return acct.User, true
}

func (s *store) unreadCount(username string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if acct, ok := s.accounts[username]; ok {
		return acct.unread
	}
	return 0
}

// createJob registers a new job with the status script it will follow.
// A job against failPeriodID fails with "no data"; everything else succeeds
// after a short PENDING/RUNNING ramp.
func (s *store) createJob(periodID int, outputFilename string) report.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	s.jobSeq++
	script := []report.Status{report.StatusPending, report.StatusRunning, report.StatusRunning, report.StatusSucceeded}
	if periodID == failPeriodID {
		script = []report.Status{report.StatusPending, report.StatusFailed}
	}

	rec := &jobRecord{
		job: report.Job{
			ID:             s.jobSeq,
			Status:         script[0],
			OutputFilename: outputFilename,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		script: script,
	}
	s.jobs[rec.job.ID] = rec
	return rec.job
}

// failPeriodID makes any job against this period fail, for demos and tests.
const failPeriodID = 13

// getJob returns the job snapshot and advances the script one step for the
// next fetch. Terminal snapshots are immutable.
func (s *store) getJob(id int) (report.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.jobs[id]
	if !ok {
		return report.Job{}, false
	}

	rec.job.Status = rec.script[rec.step]
	if rec.job.Status == report.StatusFailed {
		rec.job.ErrorMessage = "no data"
	}
	if !rec.job.Status.Terminal() {
		p := (rec.step + 1) * 100 / len(rec.script)
		rec.job.Progress = &p
		rec.job.UpdatedAt = time.Now().UTC()
		rec.step++
	} else {
		rec.job.Progress = nil
	}

	snapshot := rec.job
	return snapshot, true
}

func (s *store) filterStudents(filter student.QueryFilter) student.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter.Clean()
	matched := make([]student.Student, 0, len(s.students))
	search := strings.ToLower(filter.Search)
	for _, st := range s.students {
		if search != "" &&
			!strings.Contains(strings.ToLower(st.Name), search) &&
			!strings.Contains(strings.ToLower(st.Document), search) {
			continue
		}
		if filter.GroupID > 0 && st.GroupID != filter.GroupID {
			continue
		}
		if filter.IsActive != nil && st.IsActive != *filter.IsActive {
			continue
		}
		matched = append(matched, st)
	}

	start := (filter.Page - 1) * filter.PageSize
	end := start + filter.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return student.Page{
		Items:    matched[start:end],
		Total:    len(matched),
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
}

func (s *store) getStudent(id int) (student.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.ID == id {
			return st, true
		}
	}
	return student.Student{}, false
}

// artifact renders a fake PDF for a succeeded job, plus the header filename
// (percent-encoded, exercising the client's decoding path).
func (s *store) artifact(job report.Job) (data []byte, dispositionName string) {
	data = []byte(fmt.Sprintf("%%PDF-1.4\n%% kampus mock artifact for job %d\n", job.ID))
	name := job.OutputFilename
	if name == "" {
		name = fmt.Sprintf("reporte-%d.pdf", job.ID)
	}
	return data, url.PathEscape(name)
}
