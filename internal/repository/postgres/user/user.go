package user

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"foodzippy/backend/foundation/web"
	"foodzippy/backend/internal/auth"
	"foodzippy/backend/internal/entity"
	"foodzippy/backend/internal/pkg/repository/postgresql"
	"foodzippy/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetByUsername looks up a field-staff account for sign-in. The caller is
// not authenticated yet, so no claims check here.
func (r Repository) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).
		Where("username = ? AND deleted_at IS NULL", strings.ToLower(strings.TrimSpace(username))).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, &web.Error{
			Err:    errors.New("invalid username or password"),
			Status: http.StatusUnauthorized,
		}
	}
	if err != nil {
		return entity.User{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetById(ctx context.Context, id int) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).
		Where("id = ? AND deleted_at IS NULL", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.User{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				u.deleted_at IS NULL
			`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND
		(u.username ilike '%s' OR u.full_name ilike '%s')`, "%"+search+"%", "%"+search+"%")
	}
	orderQuery := "ORDER BY u.created_at desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			u.id,
			u.username,
			u.full_name,
			u.role,
			u.is_active
		FROM users u

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Username,
			&detail.FullName,
			&detail.Role,
			&detail.IsActive); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user list"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(u.id)
		FROM users u
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting users"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Username", "Password", "FullName", "Role"); err != nil {
		return CreateResponse{}, err
	}

	if *request.Role != auth.RoleAgent && *request.Role != auth.RoleEmployee {
		return CreateResponse{}, web.NewRequestError(errors.Errorf("invalid role %q", *request.Role), http.StatusBadRequest)
	}

	username := strings.ToLower(strings.TrimSpace(*request.Username))

	exists := false
	if err := r.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND deleted_at IS NULL)`,
		username).Scan(&exists); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "username check"), http.StatusInternalServerError)
	}
	if exists {
		return CreateResponse{}, web.NewRequestError(errors.New("username already exists"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashed := string(hash)

	var response CreateResponse
	response.Username = &username
	response.Password = &hashed
	response.FullName = request.FullName
	response.Role = request.Role
	response.IsActive = true
	response.CreatedAt = time.Now()
	response.CreatedBy = &claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating user"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if _, err := r.GetById(ctx, request.ID); err != nil {
		return err
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*request.Username))

		exists := false
		if err := r.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND deleted_at IS NULL AND id <> $2)`,
			username, request.ID).Scan(&exists); err != nil {
			return web.NewRequestError(errors.Wrap(err, "username check"), http.StatusInternalServerError)
		}
		if exists {
			return web.NewRequestError(errors.New("username already exists"), http.StatusBadRequest)
		}

		q.Set("username = ?", username)
	}
	if request.Password != nil && *request.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		q.Set("password = ?", string(hash))
	}
	if request.FullName != nil {
		q.Set("full_name = ?", *request.FullName)
	}
	if request.IsActive != nil {
		q.Set("is_active = ?", *request.IsActive)
	}

	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating user"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}
	return r.DeleteRow(ctx, "users", id)
}
