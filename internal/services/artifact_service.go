package services

import (
	"context"
	"errors"
	"time"

	"github.com/speakbright/backend/internal/gamification"
	"github.com/speakbright/backend/internal/models"
)

// ErrUnknownArtifact is returned when an artifact key is not in the catalog
var ErrUnknownArtifact = errors.New("unknown artifact")

// ArtifactRepository is the interface that wraps methods for user_artifacts table data access
type ArtifactRepository interface {
	// Method Grant records ownership of an artifact. Re-granting an
	// already-owned artifact is a no-op.
	//
	// If some error occurs during data creation, the error will be returned.
	Grant(ctx context.Context, userID int, artifact models.Artifact, acquiredAt time.Time) error
	// Method ListByUser retrieves a user's owned artifacts.
	//
	// If no records are found, an empty slice will be returned.
	// If some error occurs during data retrieval, the error will be returned.
	ListByUser(ctx context.Context, userID int) ([]models.UserArtifact, error)
	// Method Equip marks one owned artifact as equipped and unequips any
	// other artifact in the same category.
	//
	// If the user does not own the artifact, ErrArtifactNotOwned will be returned.
	// If some error occurs during the update, the error will be returned.
	Equip(ctx context.Context, userID int, artifactKey string, category string) error
}

// artifactService implements the artifact collection
type artifactService struct {
	artifactRepo ArtifactRepository
}

// NewArtifactService creates a new artifact service
func NewArtifactService(artifactRepo ArtifactRepository) *artifactService {
	return &artifactService{
		artifactRepo: artifactRepo,
	}
}

// ListArtifacts returns the full artifact catalog in display order,
// annotated with the user's ownership and equip state
func (s *artifactService) ListArtifacts(ctx context.Context, userID int) ([]models.UserArtifactDetail, error) {
	owned, err := s.artifactRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ownedByKey := make(map[string]models.UserArtifact, len(owned))
	for _, a := range owned {
		ownedByKey[a.ArtifactKey] = a
	}

	catalog := gamification.Artifacts()
	details := make([]models.UserArtifactDetail, 0, len(catalog))
	for _, artifact := range catalog {
		detail := models.UserArtifactDetail{Artifact: artifact}
		if ua, ok := ownedByKey[artifact.Key]; ok {
			acquiredAt := ua.AcquiredAt
			detail.Owned = true
			detail.Equipped = ua.Equipped
			detail.AcquiredAt = &acquiredAt
		}
		details = append(details, detail)
	}

	return details, nil
}

// Equip equips one owned artifact, replacing any equipped artifact in the
// same category
func (s *artifactService) Equip(ctx context.Context, userID int, artifactKey string) error {
	artifact, ok := gamification.ArtifactByKey(artifactKey)
	if !ok {
		return ErrUnknownArtifact
	}

	return s.artifactRepo.Equip(ctx, userID, artifact.Key, artifact.Category)
}

// GrantForAchievement grants the artifact tied to a newly unlocked
// achievement, when one exists
func (s *artifactService) GrantForAchievement(ctx context.Context, userID int, achievementKey string, now time.Time) error {
	artifact, ok := gamification.ArtifactForAchievement(achievementKey)
	if !ok {
		return nil
	}

	return s.artifactRepo.Grant(ctx, userID, artifact, now)
}
