package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
)

type mockTurfRepo struct {
	mock.Mock
}

func (m *mockTurfRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTurfRepo) Create(ctx context.Context, turf *domain.Turf) (*domain.Turf, error) {
	args := m.Called(ctx, turf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Turf), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}

func TestSeed_EmptyCatalog(t *testing.T) {
	repo := &mockTurfRepo{}
	repo.On("Count", mock.Anything).Return(int64(0), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Turf{ID: 1, Name: "The Arena"}, nil)

	created, err := seed(context.Background(), repo, nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, 6, created)
	repo.AssertNumberOfCalls(t, "Create", 6)
}

func TestSeed_SkipsFilledCatalog(t *testing.T) {
	repo := &mockTurfRepo{}
	repo.On("Count", mock.Anything).Return(int64(3), nil)

	created, err := seed(context.Background(), repo, nopLogger{})
	require.NoError(t, err)
	assert.Zero(t, created)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeed_StopsOnError(t *testing.T) {
	repo := &mockTurfRepo{}
	repo.On("Count", mock.Anything).Return(int64(0), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	created, err := seed(context.Background(), repo, nopLogger{})
	assert.Error(t, err)
	assert.Zero(t, created)
}

func TestDemoTurfsAreValid(t *testing.T) {
	for _, turf := range demoTurfs() {
		assert.NoError(t, turf.Validate(), turf.Name)
	}
}
