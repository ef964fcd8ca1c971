package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tlemaire/savate-tournament/models"
	"github.com/tlemaire/savate-tournament/repositories"
	"github.com/tlemaire/savate-tournament/storage"
)

type ClubService interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int) (*models.Club, error)
	List(ctx context.Context) ([]*models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	Delete(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, id int, contentType string, body io.Reader) (*models.Club, error)
}

type clubService struct {
	clubRepo repositories.ClubRepository
	uploader storage.FileUploader
}

func NewClubService(clubRepo repositories.ClubRepository, uploader storage.FileUploader) ClubService {
	return &clubService{clubRepo: clubRepo, uploader: uploader}
}

func (s *clubService) Create(ctx context.Context, club *models.Club) error {
	if strings.TrimSpace(club.Name) == "" {
		return ErrClubNameRequired
	}
	return mapClubRepoError(s.clubRepo.Create(ctx, club))
}

func (s *clubService) GetByID(ctx context.Context, id int) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapClubRepoError(err)
	}
	s.resolveLogoURL(club)
	return club, nil
}

func (s *clubService) List(ctx context.Context) ([]*models.Club, error) {
	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, club := range clubs {
		s.resolveLogoURL(club)
	}
	return clubs, nil
}

func (s *clubService) Update(ctx context.Context, club *models.Club) error {
	if strings.TrimSpace(club.Name) == "" {
		return ErrClubNameRequired
	}
	return mapClubRepoError(s.clubRepo.Update(ctx, club))
}

func (s *clubService) Delete(ctx context.Context, id int) error {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return mapClubRepoError(err)
	}

	if err := s.clubRepo.Delete(ctx, id); err != nil {
		return mapClubRepoError(err)
	}

	if club.LogoKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *club.LogoKey); err != nil {
			// The record is already gone; an orphaned object is acceptable.
			return nil
		}
	}
	return nil
}

func (s *clubService) UploadLogo(ctx context.Context, id int, contentType string, body io.Reader) (*models.Club, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageUnavailable
	}

	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapClubRepoError(err)
	}

	key := fmt.Sprintf("clubs/%d/logo", id)
	result, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload club logo: %w", err)
	}

	if err := s.clubRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, mapClubRepoError(err)
	}

	club.LogoKey = &result.Key
	s.resolveLogoURL(club)
	return club, nil
}

func (s *clubService) resolveLogoURL(club *models.Club) {
	if club.LogoKey == nil || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*club.LogoKey); url != "" {
		club.LogoURL = &url
	}
}

func mapClubRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrClubNotFound):
		return ErrClubNotFound
	case errors.Is(err, repositories.ErrClubNameConflict):
		return ErrClubNameConflict
	case errors.Is(err, repositories.ErrClubHasFighters):
		return ErrClubHasFighters
	default:
		return err
	}
}
