package attendance

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"foodzippy/backend/foundation/web"
	"foodzippy/backend/internal/auth"
	"foodzippy/backend/internal/entity"
	"foodzippy/backend/internal/pkg/repository/postgresql"
	"foodzippy/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
	fullDayMinutes int
}

func NewRepository(database *postgresql.Database, fullDayMinutes int) *Repository {
	return &Repository{Database: database, fullDayMinutes: fullDayMinutes}
}

func (r Repository) record(a entity.AgentAttendance) Record {
	return Record{
		AgentAttendance: a,
		Duration:        DurationMinutes(a.CheckIn, a.CheckOut),
		Status:          DeriveStatus(a.CheckIn, a.CheckOut, r.fullDayMinutes),
	}
}

func (r Repository) records(list []entity.AgentAttendance) []Record {
	out := make([]Record, 0, len(list))
	for _, a := range list {
		out = append(out, r.record(a))
	}
	return out
}

func (r Repository) today(ctx context.Context, agentID int, day time.Time) (entity.AgentAttendance, error) {
	var detail entity.AgentAttendance

	err := r.NewSelect().Model(&detail).
		Where("deleted_at IS NULL AND agent_id = ? AND work_day = ?", agentID, day).
		Scan(ctx)

	return detail, err
}

// CheckIn opens today's session for the caller. The existence check gives a
// friendly conflict message; the unique (agent_id, work_day) index is what
// actually prevents the duplicate under concurrent requests.
func (r Repository) CheckIn(ctx context.Context, request CheckInRequest) (Record, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAgent, auth.RoleEmployee)
	if err != nil {
		return Record{}, err
	}

	now := time.Now()
	day := NormalizeDay(now)

	_, err = r.today(ctx, claims.UserId, day)
	if err == nil {
		return Record{}, web.NewRequestError(postgres.ErrAlreadyCheckedIn, http.StatusBadRequest)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Record{}, web.NewRequestError(errors.Wrap(err, "checking today's attendance"), http.StatusInternalServerError)
	}

	detail := entity.AgentAttendance{
		AgentID:          &claims.UserId,
		AgentName:        &claims.FullName,
		WorkDay:          day,
		CheckIn:          now,
		CheckInLatitude:  request.Latitude,
		CheckInLongitude: request.Longitude,
	}
	detail.CreatedAt = now
	detail.CreatedBy = &claims.UserId

	_, err = r.NewInsert().Model(&detail).Returning("id").Exec(ctx, &detail.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return Record{}, web.NewRequestError(postgres.ErrAlreadyCheckedIn, http.StatusBadRequest)
		}
		return Record{}, web.NewRequestError(errors.Wrap(err, "creating attendance"), http.StatusBadRequest)
	}

	return r.record(detail), nil
}

// CheckOut closes today's session. All preconditions are checked before any
// write happens.
func (r Repository) CheckOut(ctx context.Context, request CheckOutRequest) (Record, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAgent, auth.RoleEmployee)
	if err != nil {
		return Record{}, err
	}

	now := time.Now()
	day := NormalizeDay(now)

	detail, err := r.today(ctx, claims.UserId, day)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, web.NewRequestError(postgres.ErrNotCheckedIn, http.StatusBadRequest)
	}
	if err != nil {
		return Record{}, web.NewRequestError(errors.Wrap(err, "selecting today's attendance"), http.StatusInternalServerError)
	}

	if detail.CheckOut != nil {
		return Record{}, web.NewRequestError(postgres.ErrAlreadyCheckedOut, http.StatusBadRequest)
	}

	detail.CheckOut = &now
	if request.Latitude != nil {
		detail.CheckOutLatitude = request.Latitude
	}
	if request.Longitude != nil {
		detail.CheckOutLongitude = request.Longitude
	}
	if request.Remark != nil {
		detail.Remark = request.Remark
	}
	detail.UpdatedAt = &now
	detail.UpdatedBy = &claims.UserId

	_, err = r.NewUpdate().Model(&detail).
		Column("check_out", "check_out_latitude", "check_out_longitude", "remark", "updated_at", "updated_by").
		Where("deleted_at IS NULL").
		WherePK().
		Exec(ctx)
	if err != nil {
		return Record{}, web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusBadRequest)
	}

	return r.record(detail), nil
}

// GetToday reports the caller's current day-bucket state.
func (r Repository) GetToday(ctx context.Context) (TodayResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAgent, auth.RoleEmployee)
	if err != nil {
		return TodayResponse{}, err
	}

	detail, err := r.today(ctx, claims.UserId, NormalizeDay(time.Now()))
	if errors.Is(err, sql.ErrNoRows) {
		return TodayResponse{}, nil
	}
	if err != nil {
		return TodayResponse{}, web.NewRequestError(errors.Wrap(err, "selecting today's attendance"), http.StatusInternalServerError)
	}

	record := r.record(detail)
	return TodayResponse{
		Attendance:    &record,
		HasCheckedIn:  true,
		HasCheckedOut: detail.CheckOut != nil,
	}, nil
}

// GetMy lists the caller's own records. The default window is the current
// calendar month.
func (r Repository) GetMy(ctx context.Context, filter RangeFilter) ([]Record, Statistics, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAgent, auth.RoleEmployee)
	if err != nil {
		return nil, Statistics{}, err
	}

	start, end := ResolveRange(filter, DefaultCurrentMonth, time.Now())

	var list []entity.AgentAttendance
	err = r.NewSelect().Model(&list).
		Where("deleted_at IS NULL AND agent_id = ?", claims.UserId).
		Where("work_day BETWEEN ? AND ?", start, end).
		Order("work_day DESC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, Statistics{}, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	return r.records(list), ComputeStatistics(list, r.fullDayMinutes), nil
}

// GetList is the fleet-wide admin view. The default window is the current
// calendar month; the status filter applies to the derived classification.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]Record, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	start, end := ResolveRange(filter.RangeFilter, DefaultCurrentMonth, time.Now())

	var list []entity.AgentAttendance
	q := r.NewSelect().Model(&list).
		Where("deleted_at IS NULL").
		Where("work_day BETWEEN ? AND ?", start, end).
		Order("work_day DESC").
		Order("check_in DESC")

	if filter.AgentID != nil {
		q = q.Where("agent_id = ?", *filter.AgentID)
	}

	if err = q.Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance list"), http.StatusInternalServerError)
	}

	records := r.records(list)

	if filter.Status != nil {
		filtered := records[:0]
		for _, rec := range records {
			if rec.Status == *filter.Status {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	total := len(records)

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Offset != nil {
		if *filter.Offset >= len(records) {
			records = []Record{}
		} else {
			records = records[*filter.Offset:]
		}
	}
	if filter.Limit != nil && *filter.Limit < len(records) {
		records = records[:*filter.Limit]
	}

	return records, total, nil
}

// GetByAgent is the admin view of a single agent. The default window is the
// trailing 30 days.
func (r Repository) GetByAgent(ctx context.Context, agentID int, filter RangeFilter) (AgentReport, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return AgentReport{}, err
	}

	var agent entity.User
	err = r.NewSelect().Model(&agent).
		Where("deleted_at IS NULL AND id = ?", agentID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return AgentReport{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return AgentReport{}, web.NewRequestError(errors.Wrap(err, "selecting agent"), http.StatusInternalServerError)
	}

	start, end := ResolveRange(filter, DefaultTrailing30Days, time.Now())

	var list []entity.AgentAttendance
	err = r.NewSelect().Model(&list).
		Where("deleted_at IS NULL AND agent_id = ?", agentID).
		Where("work_day BETWEEN ? AND ?", start, end).
		Order("work_day DESC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return AgentReport{}, web.NewRequestError(errors.Wrap(err, "selecting agent attendance"), http.StatusInternalServerError)
	}

	return AgentReport{
		Agent: AgentSummary{
			ID:       agent.ID,
			FullName: agent.FullName,
			Username: agent.Username,
			Role:     agent.Role,
		},
		Statistics: ComputeStatistics(list, r.fullDayMinutes),
		Records:    r.records(list),
		Start:      start,
		End:        end,
	}, nil
}
