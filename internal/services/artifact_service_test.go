package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/speakbright/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactService_ListArtifacts(t *testing.T) {
	acquiredAt := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	repo := &mockArtifactRepository{
		owned: []models.UserArtifact{
			{UserID: 1, ArtifactKey: "wooden_podium", Equipped: true, AcquiredAt: acquiredAt},
		},
	}
	svc := NewArtifactService(repo)

	details, err := svc.ListArtifacts(context.Background(), 1)

	require.NoError(t, err)
	// Full catalog comes back, owned entries annotated
	require.NotEmpty(t, details)

	byKey := make(map[string]models.UserArtifactDetail)
	for _, d := range details {
		byKey[d.Key] = d
	}

	podium := byKey["wooden_podium"]
	assert.True(t, podium.Owned)
	assert.True(t, podium.Equipped)
	require.NotNil(t, podium.AcquiredAt)
	assert.Equal(t, acquiredAt, *podium.AcquiredAt)

	laurel := byKey["golden_laurel"]
	assert.False(t, laurel.Owned)
	assert.False(t, laurel.Equipped)
	assert.Nil(t, laurel.AcquiredAt)
}

func TestArtifactService_Equip(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		repo          *mockArtifactRepository
		expectedError error
	}{
		{
			name: "success",
			key:  "velvet_curtain",
			repo: &mockArtifactRepository{},
		},
		{
			name:          "unknown artifact",
			key:           "crystal_ball",
			repo:          &mockArtifactRepository{},
			expectedError: ErrUnknownArtifact,
		},
		{
			name:          "repository error",
			key:           "velvet_curtain",
			repo:          &mockArtifactRepository{equipErr: errors.New("database error")},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewArtifactService(tt.repo)

			err := svc.Equip(context.Background(), 1, tt.key)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Empty(t, tt.repo.equipped)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.key, tt.repo.equipped)
			}
		})
	}
}

func TestArtifactService_GrantForAchievement(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("grants the tied artifact", func(t *testing.T) {
		repo := &mockArtifactRepository{}
		svc := NewArtifactService(repo)

		err := svc.GrantForAchievement(context.Background(), 1, "FIRST_LESSON", now)

		require.NoError(t, err)
		assert.Equal(t, "wooden_podium", repo.grantedKey)
	})

	t.Run("no artifact for the achievement is a no-op", func(t *testing.T) {
		repo := &mockArtifactRepository{}
		svc := NewArtifactService(repo)

		err := svc.GrantForAchievement(context.Background(), 1, "UNMAPPED", now)

		require.NoError(t, err)
		assert.Empty(t, repo.grantedKey)
	})
}
