package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
	"github.com/jsamuelsen11/project-tracker/internal/ports"
)

// Compile-time check that IntakeService implements ports.IntakeService.
var _ ports.IntakeService = (*IntakeService)(nil)

// IntakeService handles project form submissions: it applies the form rules
// and adds accepted projects to the store. It holds no state of its own.
type IntakeService struct {
	store  ports.ProjectStore
	rules  project.Rules
	logger *slog.Logger
}

// NewIntakeService creates an IntakeService that adds accepted submissions to
// store. A nil logger discards output.
func NewIntakeService(store ports.ProjectStore, rules project.Rules, logger *slog.Logger) *IntakeService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &IntakeService{
		store:  store,
		rules:  rules,
		logger: logger,
	}
}

// Submit trims title and description, validates the trimmed input and, when
// every field passes, adds it. The rules see exactly what is stored. A
// rejected submission adds nothing and returns the *domain.ValidationError.
func (s *IntakeService) Submit(ctx context.Context, in project.Input) (project.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	s.logger.InfoContext(ctx, "project submitted", slog.String("title", in.Title))

	if err := in.Validate(s.rules); err != nil {
		s.logger.InfoContext(ctx, "project submission rejected",
			slog.String("operation", "Submit"),
			slog.Any("error", err),
		)
		return project.Project{}, err
	}

	created, err := s.store.AddProject(in.Title, in.Description, in.People)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to add project",
			slog.String("operation", "Submit"),
			slog.Any("error", err),
		)
		return project.Project{}, err
	}

	return created, nil
}
