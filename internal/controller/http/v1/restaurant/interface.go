package restaurant

import (
	"context"

	"foodzippy/backend/internal/entity"
	"foodzippy/backend/internal/repository/postgres/restaurant"
)

type Restaurant interface {
	GetById(ctx context.Context, id int) (entity.Vendor, error)
	Create(ctx context.Context, request restaurant.CreateRequest) (entity.Vendor, error)
	GetList(ctx context.Context, filter restaurant.Filter) ([]entity.Vendor, int, error)
	UpdateStatus(ctx context.Context, request restaurant.UpdateStatusRequest) error
	UpdateColumns(ctx context.Context, request restaurant.UpdateRequest) (entity.Vendor, error)
	RaiseEditRequest(ctx context.Context, id int, remark string) (entity.Vendor, error)
	ApproveEdit(ctx context.Context, id int) (entity.Vendor, error)
	RejectEdit(ctx context.Context, id int) (entity.Vendor, error)
	GetPendingEditRequests(ctx context.Context) ([]entity.Vendor, error)
	MarkEditSeen(ctx context.Context, id int) error
	GetUnreadEditCount(ctx context.Context) (int, error)
	GetAnalytics(ctx context.Context) (restaurant.AnalyticsResponse, error)
}
