package selections

import (
	"context"
	"fmt"
	"meetcue-service/internal/app/contracts"
	"meetcue-service/internal/app/models"
	"meetcue-service/internal/app/services/availability"
	"meetcue-service/internal/pkg/constvars"
	"meetcue-service/internal/pkg/dto/requests"
	"meetcue-service/internal/pkg/dto/responses"
	"meetcue-service/internal/pkg/exceptions"
	"strings"
	"time"
)

type selectionUsecase struct {
	SelectionRepository contracts.SelectionRepository
	GroupRepository     contracts.GroupRepository
	RecomputeQueue      contracts.RecomputeQueueService
}

func NewSelectionUsecase(
	selectionRepository contracts.SelectionRepository,
	groupRepository contracts.GroupRepository,
	recomputeQueue contracts.RecomputeQueueService,
) contracts.SelectionUsecase {
	return &selectionUsecase{
		SelectionRepository: selectionRepository,
		GroupRepository:     groupRepository,
		RecomputeQueue:      recomputeQueue,
	}
}

func (uc *selectionUsecase) CreateSelection(ctx context.Context, userID, userName string, request *requests.CreateSelection) (*responses.Selection, error) {
	days, err := scheduleFromRequest(request.Days)
	if err != nil {
		return nil, err
	}

	selection := &models.Selection{
		Title:    request.Title,
		UserID:   userID,
		UserName: userName,
		Timezone: request.Timezone,
		Days:     days,
	}

	selectionID, err := uc.SelectionRepository.Insert(ctx, selection)
	if err != nil {
		return nil, err
	}
	selection.ID = selectionID

	return toSelectionResponse(selection)
}

// GetSelectionByID lazily upgrades documents still stored in the trimmed
// hour-window schema: the migrated form is written back on first read, which
// also strips the legacy hour fields.
func (uc *selectionUsecase) GetSelectionByID(ctx context.Context, selectionID string) (*responses.Selection, error) {
	selection, err := uc.loadMigrated(ctx, selectionID)
	if err != nil {
		return nil, err
	}
	return toSelectionResponse(selection)
}

func (uc *selectionUsecase) ListSelectionsByUser(ctx context.Context, userID string) ([]responses.SelectionSummary, error) {
	selections, err := uc.SelectionRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summaries := make([]responses.SelectionSummary, 0, len(selections))
	for _, selection := range selections {
		offset, err := availability.FormatGMTOffset(selection.Timezone, now)
		if err != nil {
			return nil, exceptions.ErrInvalidTimezone(err)
		}
		summaries = append(summaries, responses.SelectionSummary{
			ID:        selection.ID,
			Title:     selection.Title,
			Timezone:  selection.Timezone,
			GMTOffset: offset,
		})
	}
	return summaries, nil
}

func (uc *selectionUsecase) UpdateSelection(ctx context.Context, userID, selectionID string, request *requests.UpdateSelection) (*responses.Selection, error) {
	selection, err := uc.loadMigrated(ctx, selectionID)
	if err != nil {
		return nil, err
	}
	if selection.UserID != userID {
		return nil, exceptions.ErrSelectionNotFound(nil)
	}

	changed := false
	scheduleChanged := false

	if request.Title != "" && request.Title != selection.Title {
		selection.Title = request.Title
		changed = true
	}
	if request.Timezone != "" && request.Timezone != selection.Timezone {
		selection.Timezone = request.Timezone
		changed = true
		scheduleChanged = true
	}

	if len(request.Days) > 0 {
		days, err := scheduleFromRequest(request.Days)
		if err != nil {
			return nil, err
		}
		for dateKey, grid := range days {
			// Writing a week identical to what the closest prior week already
			// resolves to would only duplicate data, so skip it.
			if resolved, ok := availability.ResolveGrid(dateKey, selection.Days); ok && resolved.Equal(grid) {
				continue
			}
			selection.Days[dateKey] = grid
			changed = true
			scheduleChanged = true
		}
	}

	if !changed {
		return toSelectionResponse(selection)
	}

	if err := uc.SelectionRepository.Replace(ctx, selection); err != nil {
		return nil, err
	}

	if scheduleChanged {
		if err := uc.enqueueReferencingGroups(ctx, selectionID); err != nil {
			return nil, err
		}
	}

	return toSelectionResponse(selection)
}

func (uc *selectionUsecase) DeleteSelection(ctx context.Context, userID, selectionID string) error {
	selection, err := uc.loadMigrated(ctx, selectionID)
	if err != nil {
		return err
	}
	if selection.UserID != userID {
		return exceptions.ErrSelectionNotFound(nil)
	}

	groups, err := uc.GroupRepository.FindBySelection(ctx, selectionID)
	if err != nil {
		return err
	}
	if len(groups) > 0 {
		names := make([]string, len(groups))
		for i, group := range groups {
			names[i] = group.Name
		}
		return exceptions.ErrSelectionInUse(joinGroupNames(names))
	}

	return uc.SelectionRepository.Delete(ctx, selectionID)
}

func (uc *selectionUsecase) GetTimezoneOffset(ctx context.Context, timezone string) (*responses.TimezoneOffset, error) {
	offset, err := availability.FormatGMTOffset(timezone, time.Now())
	if err != nil {
		return nil, exceptions.ErrInvalidTimezone(err)
	}
	return &responses.TimezoneOffset{Timezone: timezone, GMTOffset: offset}, nil
}

func (uc *selectionUsecase) loadMigrated(ctx context.Context, selectionID string) (*models.Selection, error) {
	selection, legacy, err := uc.SelectionRepository.FindByID(ctx, selectionID)
	if err != nil {
		return nil, err
	}
	if selection == nil && legacy == nil {
		return nil, exceptions.ErrSelectionNotFound(nil)
	}

	if legacy != nil {
		selection = legacy.Migrate()
		// Last-write-wins is safe here: the migrated document is a pure
		// function of the stored one.
		if err := uc.SelectionRepository.Replace(ctx, selection); err != nil {
			return nil, err
		}
	}
	return selection, nil
}

func (uc *selectionUsecase) enqueueReferencingGroups(ctx context.Context, selectionID string) error {
	groups, err := uc.GroupRepository.FindBySelection(ctx, selectionID)
	if err != nil {
		return err
	}
	for _, group := range groups {
		if err := uc.RecomputeQueue.Enqueue(ctx, contracts.RecomputeMessage{GroupID: group.ID}); err != nil {
			return err
		}
	}
	return nil
}

func scheduleFromRequest(days map[string][]int) (availability.Schedule, error) {
	schedule := availability.Schedule{}
	for dateKey, slots := range days {
		if _, err := availability.ParseDateKey(dateKey); err != nil {
			return nil, exceptions.ErrCannotParseDate(err)
		}
		if len(slots) != availability.GridLength {
			err := fmt.Errorf("grid for %s has %d slots, want %d", dateKey, len(slots), availability.GridLength)
			return nil, exceptions.WrapWithError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevInvalidInput)
		}
		schedule[dateKey] = availability.Grid(slots).Clone()
	}
	return schedule, nil
}

func toSelectionResponse(selection *models.Selection) (*responses.Selection, error) {
	offset, err := availability.FormatGMTOffset(selection.Timezone, time.Now())
	if err != nil {
		return nil, exceptions.ErrInvalidTimezone(err)
	}

	days := make(map[string][]int, len(selection.Days))
	for dateKey, grid := range selection.Days {
		days[dateKey] = grid
	}

	return &responses.Selection{
		ID:        selection.ID,
		Title:     selection.Title,
		UserID:    selection.UserID,
		UserName:  selection.UserName,
		Timezone:  selection.Timezone,
		GMTOffset: offset,
		Days:      days,
	}, nil
}

// joinGroupNames renders the referencing group list the way the client shows
// it: "A.", "A and B." or "A, B, and C."
func joinGroupNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0] + "."
	case 2:
		return names[0] + " and " + names[1] + "."
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1] + "."
	}
}
