package restaurant

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"foodzippy/backend/foundation/web"
	"foodzippy/backend/internal/auth"
	"foodzippy/backend/internal/entity"
	"foodzippy/backend/internal/pkg/repository/postgresql"
	"foodzippy/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Vendor, error) {
	var detail entity.Vendor

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Vendor{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Vendor{}, web.NewRequestError(errors.Wrap(err, "selecting vendor"), http.StatusInternalServerError)
	}

	return detail, nil
}

// Create registers a vendor record. The persisted status is always pending
// no matter what the caller sent, and provenance comes from the
// authenticated claims, never the payload.
func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.Vendor, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAgent, auth.RoleEmployee)
	if err != nil {
		return entity.Vendor{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "FullAddress", "Latitude", "Longitude"); err != nil {
		return entity.Vendor{}, err
	}

	if len(request.Image) == 0 {
		return entity.Vendor{}, web.NewRequestError(errors.New("restaurant image is required"), http.StatusBadRequest)
	}

	var review entity.Review
	if strings.TrimSpace(request.Review) != "" {
		var in ReviewInput
		if err := json.Unmarshal([]byte(request.Review), &in); err != nil {
			return entity.Vendor{}, web.NewRequestError(errors.New("invalid review data format"), http.StatusBadRequest)
		}
		review = entity.Review{
			FollowUpDate:     in.FollowUpDate,
			ConvincingStatus: in.ConvincingStatus,
			Behavior:         in.Behavior,
			AudioURL:         in.AudioURL,
		}
		if err := review.Validate(); err != nil {
			return entity.Vendor{}, web.NewRequestError(err, http.StatusBadRequest)
		}
	}

	var loginEmail *string
	if request.LoginEmail != nil && strings.TrimSpace(*request.LoginEmail) != "" {
		email := strings.ToLower(strings.TrimSpace(*request.LoginEmail))
		loginEmail = &email

		exists := false
		if err := r.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM vendors WHERE login_email = $1 AND deleted_at IS NULL)`,
			email).Scan(&exists); err != nil {
			return entity.Vendor{}, web.NewRequestError(errors.Wrap(err, "login email check"), http.StatusInternalServerError)
		}
		if exists {
			return entity.Vendor{}, web.NewRequestError(postgres.ErrEmailRegistered, http.StatusBadRequest)
		}
	}

	var loginPassword *string
	if request.LoginPassword != nil && *request.LoginPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.LoginPassword), bcrypt.DefaultCost)
		if err != nil {
			return entity.Vendor{}, web.NewRequestError(errors.Wrap(err, "hashing vendor password"), http.StatusInternalServerError)
		}
		hashed := string(hash)
		loginPassword = &hashed
	}

	profile := request.Profile
	if profile == nil {
		profile = entity.Profile{}
	}
	if loginPassword != nil {
		profile["login_password"] = entity.StringValue(*loginPassword)
	}

	detail := entity.Vendor{
		Name:        request.Name,
		Image:       request.Image,
		Status:      entity.VendorPending,
		LoginEmail:  loginEmail,
		FullAddress: request.FullAddress,
		Latitude:    request.Latitude,
		Longitude:   request.Longitude,
		City:        request.City,
		Services:    ParseStringList(request.Services),
		Categories:  ParseStringList(request.Categories),
		Profile:     profile,
		Review:      review,

		CreatedByName:     &claims.FullName,
		CreatedByUserID:   &claims.UserId,
		CreatedByUsername: &claims.Username,
		CreatedByRole:     &claims.Role,
	}
	detail.CreatedAt = time.Now()
	detail.CreatedBy = &claims.UserId

	_, err = r.NewInsert().Model(&detail).Returning("id").Exec(ctx, &detail.ID)
	if err != nil {
		// The partial unique index is the real guarantee; the existence
		// check above only gives a friendlier message without a race.
		if strings.Contains(err.Error(), "duplicate key") {
			return entity.Vendor{}, web.NewRequestError(postgres.ErrEmailRegistered, http.StatusBadRequest)
		}
		return entity.Vendor{}, web.NewRequestError(errors.Wrap(err, "creating vendor"), http.StatusBadRequest)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.Vendor, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	var list []entity.Vendor

	q := r.NewSelect().Model(&list).Where("deleted_at IS NULL")

	if filter.Status != nil {
		if !entity.VendorStatus(*filter.Status).Valid() {
			return nil, 0, web.NewRequestError(errors.Errorf("invalid status %q", *filter.Status), http.StatusBadRequest)
		}
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.City != nil {
		q = q.Where("city = ?", *filter.City)
	}
	if filter.Search != nil {
		search := "%" + strings.TrimSpace(*filter.Search) + "%"
		q = q.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Where("name ILIKE ?", search).
				WhereOr("login_email ILIKE ?", search).
				WhereOr("city ILIKE ?", search)
		})
	}

	q = q.Order("created_at DESC")

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		q = q.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		q = q.Offset(*filter.Offset)
	}

	count, err := q.ScanAndCount(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting vendors"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// UpdateStatus applies an admin status decision. Transitions are
// intentionally unrestricted: un-publishing a vendor is allowed.
func (r Repository) UpdateStatus(ctx context.Context, request UpdateStatusRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "Status"); err != nil {
		return err
	}
	if !entity.VendorStatus(*request.Status).Valid() {
		return web.NewRequestError(errors.Errorf("invalid status %q", *request.Status), http.StatusBadRequest)
	}

	result, err := r.NewUpdate().Table("vendors").
		Where("deleted_at IS NULL AND id = ?", request.ID).
		Set("status = ?", *request.Status).
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", claims.UserId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating vendor status"), http.StatusBadRequest)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// UpdateColumns merges the given fields into an existing record. Status is
// only re-derived when the payload carries it; location fields cannot be
// changed at all.
func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) (entity.Vendor, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return entity.Vendor{}, err
	}

	detail, err := r.GetById(ctx, request.ID)
	if err != nil {
		return entity.Vendor{}, err
	}

	if request.Name != nil {
		detail.Name = request.Name
	}
	if request.City != nil {
		detail.City = request.City
	}
	if request.LoginEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*request.LoginEmail))
		if email != "" && (detail.LoginEmail == nil || email != *detail.LoginEmail) {
			exists := false
			if err := r.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM vendors WHERE login_email = $1 AND deleted_at IS NULL AND id <> $2)`,
				email, request.ID).Scan(&exists); err != nil {
				return entity.Vendor{}, web.NewRequestError(errors.Wrap(err, "login email check"), http.StatusInternalServerError)
			}
			if exists {
				return entity.Vendor{}, web.NewRequestError(postgres.ErrEmailRegistered, http.StatusBadRequest)
			}
		}
		if email == "" {
			detail.LoginEmail = nil
		} else {
			detail.LoginEmail = &email
		}
	}
	if request.Services != nil {
		detail.Services = ParseStringList(request.Services)
	}
	if request.Categories != nil {
		detail.Categories = ParseStringList(request.Categories)
	}
	if request.Status != nil {
		if !entity.VendorStatus(*request.Status).Valid() {
			return entity.Vendor{}, web.NewRequestError(errors.Errorf("invalid status %q", *request.Status), http.StatusBadRequest)
		}
		detail.Status = entity.VendorStatus(*request.Status)
	}
	if request.Profile != nil {
		detail.Profile = detail.Profile.Merge(request.Profile)
	}

	now := time.Now()
	detail.UpdatedAt = &now
	detail.UpdatedBy = &claims.UserId

	_, err = r.NewUpdate().Model(&detail).
		Column("name", "city", "login_email", "services", "categories", "status", "profile", "updated_at", "updated_by").
		Where("deleted_at IS NULL").
		WherePK().
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return entity.Vendor{}, web.NewRequestError(postgres.ErrEmailRegistered, http.StatusBadRequest)
		}
		return entity.Vendor{}, web.NewRequestError(errors.Wrap(err, "updating vendor"), http.StatusBadRequest)
	}

	return detail, nil
}

// RaiseEditRequest opens an edit request on behalf of the record's creator.
func (r Repository) RaiseEditRequest(ctx context.Context, id int, remark string) (entity.Vendor, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAgent, auth.RoleEmployee)
	if err != nil {
		return entity.Vendor{}, err
	}

	detail, err := r.GetById(ctx, id)
	if err != nil {
		return entity.Vendor{}, err
	}

	if detail.CreatedByUserID == nil || *detail.CreatedByUserID != claims.UserId {
		return entity.Vendor{}, web.NewRequestError(errors.New("only the creator may request an edit"), http.StatusUnauthorized)
	}

	detail.EditRequest.Raise(time.Now(), remark)

	if err := r.saveEditRequest(ctx, &detail, claims.UserId); err != nil {
		return entity.Vendor{}, err
	}

	return detail, nil
}

func (r Repository) ApproveEdit(ctx context.Context, id int) (entity.Vendor, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return entity.Vendor{}, err
	}

	detail, err := r.GetById(ctx, id)
	if err != nil {
		return entity.Vendor{}, err
	}

	if err := detail.EditRequest.Approve(time.Now()); err != nil {
		return entity.Vendor{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	if err := r.saveEditRequest(ctx, &detail, claims.UserId); err != nil {
		return entity.Vendor{}, err
	}

	return detail, nil
}

func (r Repository) RejectEdit(ctx context.Context, id int) (entity.Vendor, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return entity.Vendor{}, err
	}

	detail, err := r.GetById(ctx, id)
	if err != nil {
		return entity.Vendor{}, err
	}

	if err := detail.EditRequest.Reject(); err != nil {
		return entity.Vendor{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	if err := r.saveEditRequest(ctx, &detail, claims.UserId); err != nil {
		return entity.Vendor{}, err
	}

	return detail, nil
}

func (r Repository) saveEditRequest(ctx context.Context, detail *entity.Vendor, userID int) error {
	_, err := r.NewUpdate().Table("vendors").
		Where("deleted_at IS NULL AND id = ?", detail.ID).
		Set("edit_requested = ?", detail.EditRequest.Requested).
		Set("edit_approved = ?", detail.EditRequest.Approved).
		Set("edit_request_date = ?", detail.EditRequest.RequestDate).
		Set("edit_approval_date = ?", detail.EditRequest.ApprovalDate).
		Set("edit_remark = ?", detail.EditRequest.Remark).
		Set("edit_seen_by_admin = ?", detail.EditRequest.SeenByAdmin).
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", userID).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "saving edit request"), http.StatusBadRequest)
	}
	return nil
}

// GetPendingEditRequests returns every vendor with an open, unapproved edit
// request, newest first.
func (r Repository) GetPendingEditRequests(ctx context.Context) ([]entity.Vendor, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	var list []entity.Vendor
	err = r.NewSelect().Model(&list).
		Where("deleted_at IS NULL AND edit_requested = true AND edit_approved = false").
		Order("edit_request_date DESC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting pending edit requests"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) MarkEditSeen(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	result, err := r.NewUpdate().Table("vendors").
		Where("deleted_at IS NULL AND id = ?", id).
		Set("edit_seen_by_admin = true").
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", claims.UserId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "marking edit request seen"), http.StatusBadRequest)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

func (r Repository) GetUnreadEditCount(ctx context.Context) (int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return 0, err
	}

	count := 0
	err = r.QueryRowContext(ctx, `
		SELECT count(id)
		FROM vendors
		WHERE deleted_at IS NULL AND edit_requested = true AND edit_seen_by_admin = false
	`).Scan(&count)
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "counting unread edit requests"), http.StatusInternalServerError)
	}

	return count, nil
}

// GetAnalytics derives the status summary and the per-month registration
// counts. Always computed fresh from the vendors table, never cached.
func (r Repository) GetAnalytics(ctx context.Context) (AnalyticsResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return AnalyticsResponse{}, err
	}

	var response AnalyticsResponse

	err = r.QueryRowContext(ctx, `
		SELECT
			count(id),
			count(id) FILTER (WHERE status = 'pending'),
			count(id) FILTER (WHERE status = 'published'),
			count(id) FILTER (WHERE status = 'rejected')
		FROM vendors
		WHERE deleted_at IS NULL
	`).Scan(
		&response.Summary.Total,
		&response.Summary.Pending,
		&response.Summary.Published,
		&response.Summary.Rejected,
	)
	if err != nil {
		return AnalyticsResponse{}, web.NewRequestError(errors.Wrap(err, "selecting vendor summary"), http.StatusInternalServerError)
	}

	rows, err := r.QueryContext(ctx, `
		SELECT
			EXTRACT(YEAR FROM created_at)::int AS year,
			EXTRACT(MONTH FROM created_at)::int AS month,
			count(id)
		FROM vendors
		WHERE deleted_at IS NULL
		GROUP BY 1, 2
		ORDER BY 1, 2
	`)
	if err != nil {
		return AnalyticsResponse{}, web.NewRequestError(errors.Wrap(err, "selecting monthly counts"), http.StatusInternalServerError)
	}
	defer rows.Close()

	for rows.Next() {
		var m MonthlyCount
		if err = rows.Scan(&m.Year, &m.Month, &m.Count); err != nil {
			return AnalyticsResponse{}, web.NewRequestError(errors.Wrap(err, "scanning monthly counts"), http.StatusInternalServerError)
		}
		response.MonthlyRequests = append(response.MonthlyRequests, m)
	}
	if err = rows.Err(); err != nil {
		return AnalyticsResponse{}, web.NewRequestError(errors.Wrap(err, "reading monthly counts"), http.StatusInternalServerError)
	}

	return response, nil
}
