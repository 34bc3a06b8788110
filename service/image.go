package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aakash/content-server/entity"
)

func (s *Service) GetImage(ctx context.Context, id uuid.UUID) (*entity.Image, error) {
	image, err := s.Repo.ImageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("get image", "Image", id.String(), err)
	}
	return image, nil
}

// GetImageURL returns a time-limited direct link to the stored variant for
// callers that want to skip the API round trip.
func (s *Service) GetImageURL(ctx context.Context, id uuid.UUID) (string, error) {
	image, err := s.Repo.ImageRepo.FindByID(ctx, id)
	if err != nil {
		return "", storageErr("get image", "Image", id.String(), err)
	}
	return s.Store.PresignedGet(ctx, image.Location)
}

// GetImageContent streams the stored variant back through the API, so callers
// never need direct object store access.
func (s *Service) GetImageContent(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	image, err := s.Repo.ImageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, "", storageErr("get image", "Image", id.String(), err)
	}

	data, err := s.Store.Download(ctx, image.Location)
	if err != nil {
		return nil, "", err
	}
	return data, image.Type, nil
}
