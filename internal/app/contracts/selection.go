package contracts

import (
	"context"
	"meetcue-service/internal/app/models"
	"meetcue-service/internal/pkg/dto/requests"
	"meetcue-service/internal/pkg/dto/responses"
)

type SelectionUsecase interface {
	CreateSelection(ctx context.Context, userID, userName string, request *requests.CreateSelection) (*responses.Selection, error)
	GetSelectionByID(ctx context.Context, selectionID string) (*responses.Selection, error)
	ListSelectionsByUser(ctx context.Context, userID string) ([]responses.SelectionSummary, error)
	UpdateSelection(ctx context.Context, userID, selectionID string, request *requests.UpdateSelection) (*responses.Selection, error)
	DeleteSelection(ctx context.Context, userID, selectionID string) error
	GetTimezoneOffset(ctx context.Context, timezone string) (*responses.TimezoneOffset, error)
}

type SelectionRepository interface {
	FindByID(ctx context.Context, selectionID string) (*models.Selection, *models.LegacySelection, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Selection, error)
	Insert(ctx context.Context, selection *models.Selection) (string, error)
	Replace(ctx context.Context, selection *models.Selection) error
	Delete(ctx context.Context, selectionID string) error
}
