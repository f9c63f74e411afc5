package repository

import (
	"context"
	"testing"

	doctorserrors "skincare/internal/doctors/errors"
	"skincare/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) DoctorRepository {
	t.Helper()
	repo, err := NewInMemoryDoctorRepository(DefaultDoctors())
	require.NoError(t, err)
	return repo
}

func TestFindAll_PreservesSeedOrder(t *testing.T) {
	repo := newRepo(t)

	doctors, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 4)

	names := []string{}
	for _, d := range doctors {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Dr. Sarah Johnson", "Dr. Michael Chen", "Dr. Emily Rodriguez", "Dr. David Kim"}, names)
}

func TestFindByID(t *testing.T) {
	repo := newRepo(t)

	d, err := repo.FindByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sarah Johnson", d.Name)
	assert.True(t, d.HasSlot("09:00"))

	_, err = repo.FindByID(context.Background(), "99")
	assert.ErrorIs(t, err, doctorserrors.ErrNotFound)

	_, err = repo.FindByID(context.Background(), " ")
	assert.ErrorIs(t, err, doctorserrors.ErrInvalidID)
}

func TestDirectoryIsImmutable(t *testing.T) {
	seed := DefaultDoctors()
	repo, err := NewInMemoryDoctorRepository(seed)
	require.NoError(t, err)

	seed[0].Name = "changed after seeding"
	got, err := repo.FindByID(context.Background(), "1")
	require.NoError(t, err)
	got.AvailableSlots[0] = "23:59"

	again, err := repo.FindByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sarah Johnson", again.Name)
	assert.Equal(t, "09:00", again.AvailableSlots[0])
}

func TestNewInMemoryDoctorRepository_RejectsBadSeed(t *testing.T) {
	_, err := NewInMemoryDoctorRepository([]*model.Doctor{{ID: "1"}, {ID: "1"}})
	assert.ErrorIs(t, err, doctorserrors.ErrInvalidID)

	_, err = NewInMemoryDoctorRepository([]*model.Doctor{{ID: ""}})
	assert.ErrorIs(t, err, doctorserrors.ErrInvalidID)
}

func TestCanceledContext(t *testing.T) {
	repo := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
