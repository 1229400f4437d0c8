package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/youthcare-backend/internal/domain"
)

// SeedUser creates an active user with the given role and a unique email.
func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, role string) *types.User {
	tb.Helper()
	id := uuid.New()
	u := &types.User{
		ID:        id,
		Email:     role + "-" + id.String() + "@example.com",
		Password:  "pw",
		FirstName: "Test",
		LastName:  role,
		Role:      role,
		IsActive:  true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedYouth creates a youth user plus profile, optionally linked to a coach.
func SeedYouth(tb testing.TB, ctx context.Context, tx *gorm.DB, coachID *uuid.UUID) (*types.User, *types.YouthProfile) {
	tb.Helper()
	dob := time.Date(2011, 4, 2, 0, 0, 0, 0, time.UTC)
	u := SeedUser(tb, ctx, tx, "youth")
	u.DateOfBirth = &dob
	if err := tx.WithContext(ctx).Model(u).Update("date_of_birth", dob).Error; err != nil {
		tb.Fatalf("seed youth dob: %v", err)
	}
	p := &types.YouthProfile{
		ID:      uuid.New(),
		UserID:  u.ID,
		CoachID: coachID,
		Level:   1,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed youth profile: %v", err)
	}
	return u, p
}

func SeedMission(tb testing.TB, ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, days int) *types.Mission {
	tb.Helper()
	m := &types.Mission{
		ID:           uuid.New(),
		Title:        "mission-" + uuid.NewString()[:8],
		Description:  "practice",
		Difficulty:   "easy",
		Category:     "mindfulness",
		RewardPoints: 100,
		Duration:     days,
		DurationUnit: "days",
		CreatedBy:    creatorID,
		IsActive:     true,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed mission: %v", err)
	}
	return m
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
