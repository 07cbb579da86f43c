package restaurant

import (
	"math"
	"net/http"
	"reflect"
	"strings"

	"foodzippy/backend/foundation/web"
	"foodzippy/backend/internal/entity"
	"foodzippy/backend/internal/repository/postgres/restaurant"
	"foodzippy/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	restaurant Restaurant
	uploader   service.Uploader
}

func NewController(restaurant Restaurant, uploader service.Uploader) *Controller {
	return &Controller{restaurant, uploader}
}

// sanitize drops the stored login credential hash from outgoing payloads.
func sanitize(v entity.Vendor) entity.Vendor {
	delete(v.Profile, "login_password")
	return v
}

func sanitizeList(list []entity.Vendor) []entity.Vendor {
	for i := range list {
		list[i] = sanitize(list[i])
	}
	return list
}

// reservedFields are the registration form keys bound to fixed columns.
// Everything else on the form lands in the schema-open profile.
var reservedFields = []string{
	"name", "full_address", "latitude", "longitude", "city",
	"login_email", "login_password", "services", "categories",
	"review", "image",
}

// Register accepts the multipart onboarding form from the field apps. The
// restaurant always starts out pending regardless of what the form says.
func (uc Controller) Register(c *web.Context) error {
	var data restaurant.CreateRequest

	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}

	if c.Request.MultipartForm != nil {
		form := c.Request.MultipartForm

		data.Services = restaurant.ParseStringList(form.Value["services"])
		data.Categories = restaurant.ParseStringList(form.Value["categories"])

		data.Profile = entity.Profile{}
		for key, values := range form.Value {
			if service.InArray(key, reservedFields) || len(values) == 0 {
				continue
			}
			data.Profile[key] = restaurant.ParseFormScalar(values[0])
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		imageRef, err := uc.uploader.Upload(file, "vendors")
		if err != nil {
			return c.RespondError(web.NewRequestError(errors.Wrap(err, "uploading image"), http.StatusBadRequest))
		}
		data.Image = imageRef
	}

	detail, err := uc.restaurant.Create(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Restaurant registered successfully and is pending approval",
		"data":    sanitize(detail),
	}, http.StatusCreated)
}

func (uc Controller) GetList(c *web.Context) error {
	var filter restaurant.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if city, ok := c.GetQueryFunc(reflect.String, "city").(*string); ok {
		filter.City = city
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.restaurant.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	limit := 10
	if filter.Limit != nil {
		limit = *filter.Limit
	}
	page := 1
	if filter.Page != nil {
		page = *filter.Page
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"results": sanitizeList(list),
			"pagination": map[string]interface{}{
				"page":  page,
				"limit": limit,
				"total": count,
				"pages": int(math.Ceil(float64(count) / float64(limit))),
			},
		},
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.restaurant.GetById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data":    sanitize(detail),
	}, http.StatusOK)
}

func (uc Controller) UpdateStatus(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data restaurant.UpdateStatusRequest
	if err := c.BindFunc(&data, "Status"); err != nil {
		return c.RespondError(err)
	}
	data.ID = id

	if err := uc.restaurant.UpdateStatus(c.Ctx, data); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Restaurant status updated",
	}, http.StatusOK)
}

func (uc Controller) Update(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data restaurant.UpdateRequest
	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}
	data.ID = id

	detail, err := uc.restaurant.UpdateColumns(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Restaurant updated",
		"data":    sanitize(detail),
	}, http.StatusOK)
}

type editRequestBody struct {
	Remark *string `json:"remark" form:"remark"`
}

func (uc Controller) RaiseEditRequest(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var body editRequestBody
	_ = c.ShouldBind(&body)

	remark := ""
	if body.Remark != nil {
		remark = strings.TrimSpace(*body.Remark)
	}

	detail, err := uc.restaurant.RaiseEditRequest(c.Ctx, id, remark)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Edit request submitted",
		"data":    detail.EditRequest,
	}, http.StatusOK)
}

func (uc Controller) ApproveEdit(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.restaurant.ApproveEdit(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Edit request approved",
		"data":    detail.EditRequest,
	}, http.StatusOK)
}

func (uc Controller) RejectEdit(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.restaurant.RejectEdit(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Edit request rejected",
		"data":    detail.EditRequest,
	}, http.StatusOK)
}

func (uc Controller) GetPendingEditRequests(c *web.Context) error {
	list, err := uc.restaurant.GetPendingEditRequests(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"results": sanitizeList(list),
			"count":   len(list),
		},
	}, http.StatusOK)
}

func (uc Controller) MarkEditSeen(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.restaurant.MarkEditSeen(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Edit request marked as seen",
	}, http.StatusOK)
}

func (uc Controller) GetUnreadEditCount(c *web.Context) error {
	count, err := uc.restaurant.GetUnreadEditCount(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"count": count,
		},
	}, http.StatusOK)
}

func (uc Controller) GetAnalytics(c *web.Context) error {
	response, err := uc.restaurant.GetAnalytics(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data":    response,
	}, http.StatusOK)
}
