package user

import (
	"fmt"
	"net/http"
	"reflect"

	"foodzippy/backend/foundation/web"
	"foodzippy/backend/internal/repository/postgres/user"
	"foodzippy/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	user    User
	baseURL string
}

func NewController(user User, baseURL string) *Controller {
	return &Controller{user: user, baseURL: baseURL}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter user.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.user.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data":    detail,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var data user.CreateRequest

	if err := c.BindFunc(&data, "Username", "Password", "FullName", "Role"); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.Create(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Account created",
		"data":    detail,
	}, http.StatusCreated)
}

func (uc Controller) Update(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data user.UpdateRequest
	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}
	data.ID = id

	if err := uc.user.UpdateColumns(c.Ctx, data); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Account updated",
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.user.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Account deleted",
	}, http.StatusOK)
}

// GetBadge renders an identification QR code for a field agent. The code
// encodes a stable profile URL so a scan resolves to the same account.
func (uc Controller) GetBadge(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	png, err := service.BadgeQRCode(fmt.Sprintf("%s/api/v1/admin/agents/%d", uc.baseURL, detail.ID))
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "rendering badge"), http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="agent-%d-badge.png"`, detail.ID))
	c.Data(http.StatusOK, "image/png", png)
	return nil
}
