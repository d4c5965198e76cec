package groups

import (
	"context"
	"fmt"
	"meetcue-service/internal/app/config"
	"meetcue-service/internal/app/contracts"
	"meetcue-service/internal/app/models"
	"meetcue-service/internal/app/services/availability"
	"meetcue-service/internal/pkg/constvars"
	"meetcue-service/internal/pkg/dto/requests"
	"meetcue-service/internal/pkg/dto/responses"
	"meetcue-service/internal/pkg/exceptions"
	"meetcue-service/internal/pkg/utils"
	"time"

	"golang.org/x/time/rate"
)

type groupUsecase struct {
	GroupRepository     contracts.GroupRepository
	SelectionRepository contracts.SelectionRepository
	RedisRepository     contracts.RedisRepository
	Storage             contracts.Storage
	RecomputeQueue      contracts.RecomputeQueueService
	InternalConfig      *config.InternalConfig
	codeLimiter         *rate.Limiter
}

func NewGroupUsecase(
	groupRepository contracts.GroupRepository,
	selectionRepository contracts.SelectionRepository,
	redisRepository contracts.RedisRepository,
	minioStorage contracts.Storage,
	recomputeQueue contracts.RecomputeQueueService,
	internalConfig *config.InternalConfig,
) contracts.GroupUsecase {
	perMinute := internalConfig.App.ReferralCodeRatePerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	return &groupUsecase{
		GroupRepository:     groupRepository,
		SelectionRepository: selectionRepository,
		RedisRepository:     redisRepository,
		Storage:             minioStorage,
		RecomputeQueue:      recomputeQueue,
		InternalConfig:      internalConfig,
		codeLimiter:         rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
	}
}

func (uc *groupUsecase) CreateGroup(ctx context.Context, userID string, request *requests.CreateGroup) (*responses.CreateGroup, error) {
	selection, err := uc.loadOwnedSelection(ctx, userID, request.SelectionID)
	if err != nil {
		return nil, err
	}

	startDate, err := availability.ParseDateKey(request.StartDate)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	startDate = availability.StartOfWeek(startDate)

	code, err := uc.generateUnusedCode(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	endDate := startDate.AddDate(0, 0, 7*request.DurationWeeks)
	group := &models.Group{
		Name:        request.Name,
		Code:        code,
		StartDate:   startDate,
		EndDate:     endDate,
		Duration:    availability.WeeksBetween(startDate, endDate),
		Selections:  []string{selection.ID},
		UserIDs:     []string{userID},
		AdminIDs:    []string{userID},
		LastUpdated: now,
	}

	groupID, err := uc.GroupRepository.Insert(ctx, group)
	if err != nil {
		return nil, err
	}
	group.ID = groupID

	if err := uc.RecomputeCompaction(ctx, groupID); err != nil {
		return nil, err
	}

	return &responses.CreateGroup{ID: groupID, Code: code}, nil
}

// GetGroupByID returns the group with its compacted availability shifted into
// the viewer's timezone. Stored compactions live in the reference zone.
func (uc *groupUsecase) GetGroupByID(ctx context.Context, groupID, viewerTimezone string) (*responses.Group, error) {
	group, err := uc.mustFindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if viewerTimezone != "" && viewerTimezone != availability.ReferenceZone && group.CompactedAvailability != nil {
		shifted, err := availability.ShiftCompacted(group.CompactedAvailability, viewerTimezone, time.Now())
		if err != nil {
			return nil, exceptions.ErrInvalidTimezone(err)
		}
		group.CompactedAvailability = shifted
	}

	return toGroupResponse(group), nil
}

func (uc *groupUsecase) GetGroupByCode(ctx context.Context, code string) (*responses.Group, error) {
	group, err := uc.GroupRepository.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, exceptions.ErrGroupCodeNotFound(nil)
	}
	return toGroupResponse(group), nil
}

func (uc *groupUsecase) ListGroupsByUser(ctx context.Context, userID string) ([]responses.Group, error) {
	groups, err := uc.GroupRepository.FindByMemberUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]responses.Group, 0, len(groups))
	for i := range groups {
		result = append(result, *toGroupResponse(&groups[i]))
	}
	return result, nil
}

func (uc *groupUsecase) JoinGroup(ctx context.Context, userID string, request *requests.JoinGroup) (*responses.Group, error) {
	group, err := uc.GroupRepository.FindByCode(ctx, request.Code)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, exceptions.ErrGroupCodeNotFound(nil)
	}

	selection, err := uc.loadOwnedSelection(ctx, userID, request.SelectionID)
	if err != nil {
		return nil, err
	}
	if group.HasSelection(selection.ID) {
		return nil, exceptions.ErrAlreadyInGroup(nil)
	}

	if err := uc.GroupRepository.AddSelection(ctx, group.ID, selection.ID, userID); err != nil {
		return nil, err
	}
	if err := uc.RecomputeQueue.Enqueue(ctx, contracts.RecomputeMessage{GroupID: group.ID}); err != nil {
		return nil, err
	}

	return uc.GetGroupByID(ctx, group.ID, "")
}

func (uc *groupUsecase) ChangeAvailability(ctx context.Context, userID, groupID string, request *requests.ChangeGroupAvailability) (*responses.Group, error) {
	group, err := uc.mustFindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	// The outgoing selection must be the caller's own registered one, not
	// just any member's.
	oldSelection, err := uc.loadOwnedSelection(ctx, userID, request.OldSelectionID)
	if err != nil {
		return nil, err
	}
	if !group.HasSelection(oldSelection.ID) {
		return nil, exceptions.ErrNotGroupMember(nil)
	}

	newSelection, err := uc.loadOwnedSelection(ctx, userID, request.NewSelectionID)
	if err != nil {
		return nil, err
	}
	if group.HasSelection(newSelection.ID) {
		return nil, exceptions.ErrAlreadyInGroup(nil)
	}

	selections := make([]string, 0, len(group.Selections))
	for _, id := range group.Selections {
		if id == request.OldSelectionID {
			selections = append(selections, newSelection.ID)
			continue
		}
		selections = append(selections, id)
	}

	if err := uc.GroupRepository.UpdateSelections(ctx, groupID, selections, group.UserIDs); err != nil {
		return nil, err
	}
	if err := uc.RecomputeQueue.Enqueue(ctx, contracts.RecomputeMessage{GroupID: groupID}); err != nil {
		return nil, err
	}

	return uc.GetGroupByID(ctx, groupID, "")
}

// LeaveGroup removes the member's selection. A group whose last member leaves
// is deleted rather than kept around empty.
func (uc *groupUsecase) LeaveGroup(ctx context.Context, userID, groupID string, request *requests.LeaveGroup) error {
	group, err := uc.mustFindByID(ctx, groupID)
	if err != nil {
		return err
	}

	// Pulling the selection and the userID must stay paired, so the leaving
	// selection has to be the caller's own.
	selection, err := uc.loadOwnedSelection(ctx, userID, request.SelectionID)
	if err != nil {
		return err
	}
	if !group.HasSelection(selection.ID) {
		return exceptions.ErrNotGroupMember(nil)
	}

	if group.Solo() {
		return uc.removeGroup(ctx, groupID)
	}

	if err := uc.GroupRepository.RemoveSelection(ctx, groupID, selection.ID, userID); err != nil {
		return err
	}
	return uc.RecomputeQueue.Enqueue(ctx, contracts.RecomputeMessage{GroupID: groupID})
}

// DeleteGroup removes the group outright. Only an admin may do this; regular
// members leave instead.
func (uc *groupUsecase) DeleteGroup(ctx context.Context, userID, groupID string) error {
	group, err := uc.mustFindByID(ctx, groupID)
	if err != nil {
		return err
	}

	admin := false
	for _, id := range group.AdminIDs {
		if id == userID {
			admin = true
			break
		}
	}
	if !admin {
		return exceptions.ErrNotGroupMember(nil)
	}

	return uc.removeGroup(ctx, groupID)
}

func (uc *groupUsecase) removeGroup(ctx context.Context, groupID string) error {
	if err := uc.GroupRepository.Delete(ctx, groupID); err != nil {
		return err
	}
	// The cached fingerprint is orphaned once the group is gone.
	return uc.RedisRepository.Delete(ctx, fmt.Sprintf(constvars.RedisCompactionKeyFormat, groupID))
}

// WeekView aggregates every member's live schedule for the week containing
// dateKey, shifted into the viewer's timezone before aggregation.
func (uc *groupUsecase) WeekView(ctx context.Context, groupID, dateKey, viewerTimezone string) (*responses.GroupWeekView, error) {
	group, err := uc.mustFindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if _, err := availability.ParseDateKey(dateKey); err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	now := time.Now()
	named := make(map[string]availability.Schedule, len(group.Selections))
	for _, selectionID := range group.Selections {
		selection, err := uc.loadSelection(ctx, selectionID)
		if err != nil {
			return nil, err
		}

		shifted, err := availability.ShiftSchedule(selection.Days, selection.Timezone, viewerTimezone, now)
		if err != nil {
			return nil, exceptions.ErrInvalidTimezone(err)
		}
		named[displayName(selection)] = shifted
	}

	view := availability.AggregateWeek(named, dateKey)

	perMember := make(map[string][]int, len(view.PerMember))
	for name, grid := range view.PerMember {
		perMember[name] = grid
	}

	return &responses.GroupWeekView{
		DateKey:    dateKey,
		Timezone:   viewerTimezone,
		StartHour:  view.StartHour,
		EndHour:    view.EndHour,
		PerMember:  perMember,
		Joint:      view.Joint,
		IdealSlots: view.Ideal,
	}, nil
}

func (uc *groupUsecase) ExportGroup(ctx context.Context, groupID string) (*responses.GroupExport, error) {
	group, err := uc.mustFindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	objectName := utils.GenerateExportObjectName(group.Code)
	bucketName := uc.InternalConfig.Minio.BucketName
	if _, err := uc.Storage.UploadJSONObject(ctx, bucketName, objectName, toGroupResponse(group)); err != nil {
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.App.ExportPresignedUrlExpiryInHour) * time.Hour
	url, err := uc.Storage.PresignedObjectURL(ctx, bucketName, objectName, expiry)
	if err != nil {
		return nil, err
	}

	return &responses.GroupExport{ObjectName: objectName, URL: url}, nil
}

// RecomputeCompaction rebuilds the persisted score series. Member schedules
// are normalized into the reference zone first so stored artifacts from
// different members line up. A fingerprint of the member snapshot is cached
// in redis; when it matches, the stored compaction is already current and the
// write is skipped.
func (uc *groupUsecase) RecomputeCompaction(ctx context.Context, groupID string) error {
	group, err := uc.mustFindByID(ctx, groupID)
	if err != nil {
		return err
	}

	now := time.Now()
	named := make(map[string]availability.Schedule, len(group.Selections))
	fingerprintParts := make([]string, 0, len(group.Selections))
	for _, selectionID := range group.Selections {
		selection, err := uc.loadSelection(ctx, selectionID)
		if err != nil {
			return err
		}

		normalized, err := availability.ShiftSchedule(selection.Days, selection.Timezone, availability.ReferenceZone, now)
		if err != nil {
			return exceptions.ErrInvalidTimezone(err)
		}
		named[displayName(selection)] = normalized
		fingerprintParts = append(fingerprintParts, fmt.Sprintf("%s|%s|%v", selection.ID, selection.Timezone, selection.Days))
	}

	fingerprint := utils.MemberSnapshotFingerprint(fingerprintParts)
	cacheKey := fmt.Sprintf(constvars.RedisCompactionKeyFormat, groupID)
	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		return err
	}
	if cached == fmt.Sprintf("%q", fingerprint) && group.CompactedAvailability != nil {
		return nil
	}

	startKey := availability.FormatDateKey(availability.StartOfWeek(group.StartDate))
	compacted, err := availability.CompactSchedules(named, startKey, group.Duration)
	if err != nil {
		return exceptions.ErrCannotParseDate(err)
	}

	if err := uc.GroupRepository.UpdateCompaction(ctx, groupID, compacted, now); err != nil {
		return err
	}

	staleAfter := time.Duration(uc.InternalConfig.App.CompactionStaleAfterInMinutes) * time.Minute
	return uc.RedisRepository.Set(ctx, cacheKey, fingerprint, staleAfter)
}

func (uc *groupUsecase) mustFindByID(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := uc.GroupRepository.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, exceptions.ErrGroupNotFound(nil)
	}
	return group, nil
}

func (uc *groupUsecase) loadSelection(ctx context.Context, selectionID string) (*models.Selection, error) {
	selection, legacy, err := uc.SelectionRepository.FindByID(ctx, selectionID)
	if err != nil {
		return nil, err
	}
	if selection == nil && legacy == nil {
		return nil, exceptions.ErrSelectionNotFound(nil)
	}
	if legacy != nil {
		selection = legacy.Migrate()
	}
	return selection, nil
}

func (uc *groupUsecase) loadOwnedSelection(ctx context.Context, userID, selectionID string) (*models.Selection, error) {
	selection, err := uc.loadSelection(ctx, selectionID)
	if err != nil {
		return nil, err
	}
	if selection.UserID != userID {
		return nil, exceptions.ErrSelectionNotFound(nil)
	}
	return selection, nil
}

// generateUnusedCode draws referral codes until one misses the store. The
// limiter bounds how fast a single instance can hammer the collection when
// the code space gets crowded.
func (uc *groupUsecase) generateUnusedCode(ctx context.Context) (string, error) {
	maxAttempts := uc.InternalConfig.App.ReferralCodeMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 10
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if !uc.codeLimiter.Allow() {
			return "", exceptions.ErrReferralCodeExhausted(nil)
		}

		code, err := utils.GenerateReferralCode()
		if err != nil {
			return "", exceptions.ErrServerProcess(err)
		}

		exists, err := uc.GroupRepository.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", exceptions.ErrReferralCodeExhausted(nil)
}

func displayName(selection *models.Selection) string {
	if selection.UserName != "" {
		return selection.UserName
	}
	return selection.Title
}

func toGroupResponse(group *models.Group) *responses.Group {
	var compacted map[string][]int
	if group.CompactedAvailability != nil {
		compacted = make(map[string][]int, len(group.CompactedAvailability))
		for name, grid := range group.CompactedAvailability {
			compacted[name] = grid
		}
	}

	return &responses.Group{
		ID:            group.ID,
		Name:          group.Name,
		Code:          group.Code,
		StartDate:     availability.FormatDateKey(group.StartDate),
		DurationWeeks: group.Duration,
		Selections:    group.Selections,
		Compacted:     compacted,
		LastUpdated:   group.LastUpdated,
	}
}
