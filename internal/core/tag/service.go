package tag

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/taibuivan/silo/internal/platform/validate"
)

var colorHexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListTags(context context.Context) ([]*Tag, error) {
	return service.repo.List(context)
}

func (service *Service) GetTag(context context.Context, id int) (*Tag, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) CreateTag(context context.Context, tag *Tag) error {
	if err := validateTag(tag); err != nil {
		return err
	}

	if err := service.repo.Create(context, tag); err != nil {
		return err
	}

	service.logger.Info("tag_created",
		slog.Int("tag_id", tag.ID),
		slog.String("name", tag.Name),
	)

	return nil
}

func (service *Service) UpdateTag(context context.Context, tag *Tag) error {
	if err := validateTag(tag); err != nil {
		return err
	}
	return service.repo.Update(context, tag)
}

func (service *Service) DeleteTag(context context.Context, id int) error {
	return service.repo.Delete(context, id)
}

func validateTag(tag *Tag) error {
	validator := &validate.Validator{}
	validator.Required("name", tag.Name).MaxLen("name", tag.Name, 100)
	if tag.ColorHex != "" {
		validator.Custom("color_hex", !colorHexPattern.MatchString(tag.ColorHex),
			"Must be a hex color like #1a2b3c")
	}
	return validator.Err()
}
