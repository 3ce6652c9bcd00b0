package student

import "context"

type (
	Repository interface {
		// FilterStudents applies AND operation on available QueryFilter fields.
		FilterStudents(ctx context.Context, filter QueryFilter) (Page, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) (Page, error) {
	filter.Clean()
	return svc.repo.FilterStudents(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}
