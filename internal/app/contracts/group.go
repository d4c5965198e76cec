package contracts

import (
	"context"
	"meetcue-service/internal/app/models"
	"meetcue-service/internal/app/services/availability"
	"meetcue-service/internal/pkg/dto/requests"
	"meetcue-service/internal/pkg/dto/responses"
	"time"
)

type GroupUsecase interface {
	CreateGroup(ctx context.Context, userID string, request *requests.CreateGroup) (*responses.CreateGroup, error)
	GetGroupByID(ctx context.Context, groupID, viewerTimezone string) (*responses.Group, error)
	GetGroupByCode(ctx context.Context, code string) (*responses.Group, error)
	ListGroupsByUser(ctx context.Context, userID string) ([]responses.Group, error)
	JoinGroup(ctx context.Context, userID string, request *requests.JoinGroup) (*responses.Group, error)
	ChangeAvailability(ctx context.Context, userID, groupID string, request *requests.ChangeGroupAvailability) (*responses.Group, error)
	LeaveGroup(ctx context.Context, userID, groupID string, request *requests.LeaveGroup) error
	DeleteGroup(ctx context.Context, userID, groupID string) error
	WeekView(ctx context.Context, groupID, dateKey, viewerTimezone string) (*responses.GroupWeekView, error)
	ExportGroup(ctx context.Context, groupID string) (*responses.GroupExport, error)
	RecomputeCompaction(ctx context.Context, groupID string) error
}

type GroupRepository interface {
	FindByID(ctx context.Context, groupID string) (*models.Group, error)
	FindByCode(ctx context.Context, code string) (*models.Group, error)
	FindByMemberUserID(ctx context.Context, userID string) ([]models.Group, error)
	FindBySelection(ctx context.Context, selectionID string) ([]models.Group, error)
	FindUpdatedBefore(ctx context.Context, cutoff time.Time) ([]models.Group, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Insert(ctx context.Context, group *models.Group) (string, error)
	AddSelection(ctx context.Context, groupID, selectionID, userID string) error
	RemoveSelection(ctx context.Context, groupID, selectionID, userID string) error
	UpdateSelections(ctx context.Context, groupID string, selections, userIDs []string) error
	UpdateCompaction(ctx context.Context, groupID string, compacted map[string]availability.Grid, lastUpdated time.Time) error
	Delete(ctx context.Context, groupID string) error
}
