package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"maisonazur/internal/domain"
	"maisonazur/internal/repos"
)

// GalleryService maintains the ordered image set of one property.
type GalleryService struct {
	Images *repos.ImageRepo
}

func NewGalleryService(images *repos.ImageRepo) *GalleryService {
	return &GalleryService{Images: images}
}

func (s *GalleryService) List(propertyID string) ([]domain.PropertyImage, error) {
	return s.Images.ListByProperty(propertyID)
}

// Append adds an image at the end of the gallery (order max+1, 0 when
// the gallery is empty).
func (s *GalleryService) Append(principal domain.Principal, propertyID, url, alt string) (domain.PropertyImage, error) {
	if err := requireAdmin(principal); err != nil {
		return domain.PropertyImage{}, err
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.PropertyImage{}, invalidf("image url is required")
	}

	img := domain.PropertyImage{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		URL:        url,
		Alt:        strings.TrimSpace(alt),
	}
	if err := s.Images.Append(&img); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PropertyImage{}, ErrNotFound
		}
		return domain.PropertyImage{}, err
	}
	return img, nil
}

// Remove deletes one image; surviving orders are compacted to 0..N-1.
func (s *GalleryService) Remove(principal domain.Principal, propertyID, imageID string) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	if err := s.Images.Remove(propertyID, imageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Reorder persists the supplied sequence as the new display order. The
// id list must be an exact permutation of the current image set; any
// subset, superset or duplicate is rejected with no partial mutation.
func (s *GalleryService) Reorder(principal domain.Principal, propertyID string, orderedIDs []string) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	if err := s.Images.Reorder(propertyID, orderedIDs); err != nil {
		switch {
		case errors.Is(err, repos.ErrOrderMismatch):
			return invalidf("orderedIds must be exactly the property's current image ids")
		case errors.Is(err, sql.ErrNoRows):
			return ErrNotFound
		}
		return err
	}
	return nil
}
