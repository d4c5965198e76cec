package selections

import (
	"context"
	"meetcue-service/internal/app/contracts"
	"meetcue-service/internal/app/models"
	"meetcue-service/internal/app/services/availability"
	"meetcue-service/internal/pkg/constvars"
	"meetcue-service/internal/pkg/dto/requests"
	"meetcue-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSelectionRepository struct {
	mock.Mock
}

func (m *MockSelectionRepository) FindByID(ctx context.Context, selectionID string) (*models.Selection, *models.LegacySelection, error) {
	args := m.Called(ctx, selectionID)
	selection, _ := args.Get(0).(*models.Selection)
	legacy, _ := args.Get(1).(*models.LegacySelection)
	return selection, legacy, args.Error(2)
}

func (m *MockSelectionRepository) FindByUserID(ctx context.Context, userID string) ([]models.Selection, error) {
	args := m.Called(ctx, userID)
	selections, _ := args.Get(0).([]models.Selection)
	return selections, args.Error(1)
}

func (m *MockSelectionRepository) Insert(ctx context.Context, selection *models.Selection) (string, error) {
	args := m.Called(ctx, selection)
	return args.String(0), args.Error(1)
}

func (m *MockSelectionRepository) Replace(ctx context.Context, selection *models.Selection) error {
	args := m.Called(ctx, selection)
	return args.Error(0)
}

func (m *MockSelectionRepository) Delete(ctx context.Context, selectionID string) error {
	args := m.Called(ctx, selectionID)
	return args.Error(0)
}

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) FindByID(ctx context.Context, groupID string) (*models.Group, error) {
	args := m.Called(ctx, groupID)
	group, _ := args.Get(0).(*models.Group)
	return group, args.Error(1)
}

func (m *MockGroupRepository) FindByCode(ctx context.Context, code string) (*models.Group, error) {
	args := m.Called(ctx, code)
	group, _ := args.Get(0).(*models.Group)
	return group, args.Error(1)
}

func (m *MockGroupRepository) FindByMemberUserID(ctx context.Context, userID string) ([]models.Group, error) {
	args := m.Called(ctx, userID)
	groups, _ := args.Get(0).([]models.Group)
	return groups, args.Error(1)
}

func (m *MockGroupRepository) FindBySelection(ctx context.Context, selectionID string) ([]models.Group, error) {
	args := m.Called(ctx, selectionID)
	groups, _ := args.Get(0).([]models.Group)
	return groups, args.Error(1)
}

func (m *MockGroupRepository) FindUpdatedBefore(ctx context.Context, cutoff time.Time) ([]models.Group, error) {
	args := m.Called(ctx, cutoff)
	groups, _ := args.Get(0).([]models.Group)
	return groups, args.Error(1)
}

func (m *MockGroupRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) Insert(ctx context.Context, group *models.Group) (string, error) {
	args := m.Called(ctx, group)
	return args.String(0), args.Error(1)
}

func (m *MockGroupRepository) AddSelection(ctx context.Context, groupID, selectionID, userID string) error {
	args := m.Called(ctx, groupID, selectionID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) RemoveSelection(ctx context.Context, groupID, selectionID, userID string) error {
	args := m.Called(ctx, groupID, selectionID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) UpdateSelections(ctx context.Context, groupID string, selections, userIDs []string) error {
	args := m.Called(ctx, groupID, selections, userIDs)
	return args.Error(0)
}

func (m *MockGroupRepository) UpdateCompaction(ctx context.Context, groupID string, compacted map[string]availability.Grid, lastUpdated time.Time) error {
	args := m.Called(ctx, groupID, compacted, lastUpdated)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

type MockRecomputeQueue struct {
	mock.Mock
}

func (m *MockRecomputeQueue) Enqueue(ctx context.Context, message contracts.RecomputeMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockRecomputeQueue) FetchN(ctx context.Context, max int) ([]contracts.QueuedRecompute, error) {
	args := m.Called(ctx, max)
	queued, _ := args.Get(0).([]contracts.QueuedRecompute)
	return queued, args.Error(1)
}

func (m *MockRecomputeQueue) Ack(ctx context.Context, deliveryTag uint64) error {
	args := m.Called(ctx, deliveryTag)
	return args.Error(0)
}

func markedGrid(column, hour, minute int) availability.Grid {
	grid := availability.ZeroGrid()
	grid[availability.HourMinuteToSlot(column, hour, minute)] = 1
	return grid
}

func storedSelection() *models.Selection {
	return &models.Selection{
		ID:       "sel-1",
		Title:    "Weekday mornings",
		UserID:   "user-1",
		UserName: "Ana",
		Timezone: "GMT",
		Days: availability.Schedule{
			"2026-03-02": markedGrid(1, 9, 0),
		},
	}
}

func TestUpdateSelection_SkipsWeekIdenticalToInheritedOne(t *testing.T) {
	selectionRepo := new(MockSelectionRepository)
	groupRepo := new(MockGroupRepository)
	queue := new(MockRecomputeQueue)

	selectionRepo.On("FindByID", mock.Anything, "sel-1").Return(storedSelection(), nil, nil)

	uc := NewSelectionUsecase(selectionRepo, groupRepo, queue)

	// The requested week resolves to 2026-03-02 through inheritance and its
	// grid is identical, so nothing should be written.
	result, err := uc.UpdateSelection(context.Background(), "user-1", "sel-1", &requests.UpdateSelection{
		Days: map[string][]int{
			"2026-03-09": markedGrid(1, 9, 0),
		},
	})

	assert.NoError(t, err)
	assert.Len(t, result.Days, 1)
	selectionRepo.AssertNotCalled(t, "Replace")
	queue.AssertNotCalled(t, "Enqueue")
}

func TestUpdateSelection_ScheduleChangeEnqueuesReferencingGroups(t *testing.T) {
	selectionRepo := new(MockSelectionRepository)
	groupRepo := new(MockGroupRepository)
	queue := new(MockRecomputeQueue)

	selectionRepo.On("FindByID", mock.Anything, "sel-1").Return(storedSelection(), nil, nil)
	selectionRepo.On("Replace", mock.Anything, mock.AnythingOfType("*models.Selection")).Return(nil)
	groupRepo.On("FindBySelection", mock.Anything, "sel-1").Return([]models.Group{
		{ID: "group-1", Name: "Book club"},
		{ID: "group-2", Name: "Film night"},
	}, nil)
	queue.On("Enqueue", mock.Anything, contracts.RecomputeMessage{GroupID: "group-1"}).Return(nil)
	queue.On("Enqueue", mock.Anything, contracts.RecomputeMessage{GroupID: "group-2"}).Return(nil)

	uc := NewSelectionUsecase(selectionRepo, groupRepo, queue)

	result, err := uc.UpdateSelection(context.Background(), "user-1", "sel-1", &requests.UpdateSelection{
		Days: map[string][]int{
			"2026-03-09": markedGrid(1, 14, 30),
		},
	})

	assert.NoError(t, err)
	assert.Len(t, result.Days, 2)
	selectionRepo.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestUpdateSelection_TitleOnlyDoesNotEnqueue(t *testing.T) {
	selectionRepo := new(MockSelectionRepository)
	groupRepo := new(MockGroupRepository)
	queue := new(MockRecomputeQueue)

	selectionRepo.On("FindByID", mock.Anything, "sel-1").Return(storedSelection(), nil, nil)
	selectionRepo.On("Replace", mock.Anything, mock.AnythingOfType("*models.Selection")).Return(nil)

	uc := NewSelectionUsecase(selectionRepo, groupRepo, queue)

	result, err := uc.UpdateSelection(context.Background(), "user-1", "sel-1", &requests.UpdateSelection{
		Title: "Weekday afternoons",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Weekday afternoons", result.Title)
	queue.AssertNotCalled(t, "Enqueue")
}

func TestGetSelection_MigratesLegacyDocumentOnRead(t *testing.T) {
	selectionRepo := new(MockSelectionRepository)

	trimmed := make(availability.Grid, 8*availability.SlotsPerHourBand)
	trimmed[availability.HourMinuteToSlot(1, 9, 0)-8*availability.SlotsPerHourBand] = 1
	legacy := &models.LegacySelection{
		Selection: models.Selection{
			ID:       "sel-1",
			Title:    "Weekday mornings",
			UserID:   "user-1",
			Timezone: "GMT",
			Days:     availability.Schedule{"2026-03-02": trimmed},
		},
		StartHour: 8,
		EndHour:   16,
	}

	selectionRepo.On("FindByID", mock.Anything, "sel-1").Return(nil, legacy, nil)

	var written *models.Selection
	selectionRepo.On("Replace", mock.Anything, mock.AnythingOfType("*models.Selection")).
		Run(func(args mock.Arguments) {
			written = args.Get(1).(*models.Selection)
		}).
		Return(nil)

	uc := NewSelectionUsecase(selectionRepo, new(MockGroupRepository), new(MockRecomputeQueue))

	result, err := uc.GetSelectionByID(context.Background(), "sel-1")

	assert.NoError(t, err)
	assert.Len(t, result.Days["2026-03-02"], availability.GridLength)
	assert.NotNil(t, written)
	assert.Len(t, written.Days["2026-03-02"], availability.GridLength)
	assert.Equal(t, 1, written.Days["2026-03-02"][availability.HourMinuteToSlot(1, 9, 0)])
}

func TestDeleteSelection_BlockedWhileReferenced(t *testing.T) {
	tests := []struct {
		name       string
		groupNames []string
		want       string
	}{
		{"One Group", []string{"Book club"}, "This selection is still in use by Book club."},
		{"Two Groups", []string{"Book club", "Film night"}, "This selection is still in use by Book club and Film night."},
		{"Three Groups", []string{"Book club", "Film night", "Quiz team"}, "This selection is still in use by Book club, Film night, and Quiz team."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selectionRepo := new(MockSelectionRepository)
			groupRepo := new(MockGroupRepository)

			selectionRepo.On("FindByID", mock.Anything, "sel-1").Return(storedSelection(), nil, nil)

			groups := make([]models.Group, len(tt.groupNames))
			for i, name := range tt.groupNames {
				groups[i] = models.Group{ID: "group-" + name, Name: name}
			}
			groupRepo.On("FindBySelection", mock.Anything, "sel-1").Return(groups, nil)

			uc := NewSelectionUsecase(selectionRepo, groupRepo, new(MockRecomputeQueue))

			err := uc.DeleteSelection(context.Background(), "user-1", "sel-1")

			customErr, ok := err.(*exceptions.CustomError)
			assert.True(t, ok)
			assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
			assert.Equal(t, tt.want, customErr.ClientMessage)
			selectionRepo.AssertNotCalled(t, "Delete")
		})
	}
}

func TestDeleteSelection_RemovesUnreferencedSelection(t *testing.T) {
	selectionRepo := new(MockSelectionRepository)
	groupRepo := new(MockGroupRepository)

	selectionRepo.On("FindByID", mock.Anything, "sel-1").Return(storedSelection(), nil, nil)
	selectionRepo.On("Delete", mock.Anything, "sel-1").Return(nil)
	groupRepo.On("FindBySelection", mock.Anything, "sel-1").Return(nil, nil)

	uc := NewSelectionUsecase(selectionRepo, groupRepo, new(MockRecomputeQueue))

	err := uc.DeleteSelection(context.Background(), "user-1", "sel-1")

	assert.NoError(t, err)
	selectionRepo.AssertExpectations(t)
}

func TestCreateSelection_RejectsWrongGridLength(t *testing.T) {
	selectionRepo := new(MockSelectionRepository)

	uc := NewSelectionUsecase(selectionRepo, new(MockGroupRepository), new(MockRecomputeQueue))

	_, err := uc.CreateSelection(context.Background(), "user-1", "Ana", &requests.CreateSelection{
		Title:    "Broken",
		Timezone: "GMT",
		Days:     map[string][]int{"2026-03-02": {1, 0, 1}},
	})

	customErr, ok := err.(*exceptions.CustomError)
	assert.True(t, ok)
	assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	selectionRepo.AssertNotCalled(t, "Insert")
}
