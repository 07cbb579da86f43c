// Package postgresql wraps the bun database handle with the cross-cutting
// helpers every repository needs: claims retrieval, required-field
// validation and soft deletes.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"foodzippy/backend/foundation/web"
	"foodzippy/backend/internal/auth"
	"foodzippy/backend/internal/pkg/config"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

type Database struct {
	*bun.DB
}

func NewDB(cfg *config.Config) *Database {
	connector := pgdriver.NewConnector(
		pgdriver.WithAddr(fmt.Sprintf("%s:%s", cfg.DBHost, cfg.DBPort)),
		pgdriver.WithUser(cfg.DBUsername),
		pgdriver.WithPassword(cfg.DBPassword),
		pgdriver.WithDatabase(cfg.DBName),
		pgdriver.WithInsecure(cfg.DisableTLS),
	)

	sqldb := sql.OpenDB(connector)
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.SQLDebug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return &Database{DB: db}
}

// CheckClaims pulls the authenticated claims out of the context and, when
// roles are given, requires one of them.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, ok := auth.GetClaims(ctx)
	if !ok {
		return auth.Claims{}, web.NewRequestError(errors.New("missing authentication"), http.StatusUnauthorized)
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized)
	}

	return claims, nil
}

// ValidateStruct checks that the named fields of s are set. Pointer fields
// must be non-nil, strings non-empty. All failures are reported together.
func (d Database) ValidateStruct(s interface{}, requiredFields ...string) error {
	v := reflect.ValueOf(s)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	var fields []web.FieldError
	for _, name := range requiredFields {
		f := v.FieldByName(name)
		if !f.IsValid() {
			fields = append(fields, web.FieldError{Field: name, Error: "unknown field"})
			continue
		}
		missing := false
		switch f.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
			missing = f.IsNil()
		case reflect.String:
			missing = f.Len() == 0
		default:
			missing = f.IsZero()
		}
		if missing {
			fields = append(fields, web.FieldError{Field: name, Error: "field is required"})
		}
	}

	if len(fields) > 0 {
		return &web.Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// DeleteRow soft-deletes one row by id, stamping who deleted it.
func (d Database) DeleteRow(ctx context.Context, table string, id int) error {
	claims, err := d.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := d.NewUpdate().Table(table).
		Where("deleted_at IS NULL AND id = ?", id).
		Set("deleted_at = ?", time.Now()).
		Set("deleted_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting from %s", table), http.StatusInternalServerError)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking deleted rows"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(errors.New("row not found"), http.StatusNotFound)
	}

	return nil
}
