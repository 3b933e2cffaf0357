package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/activitae/cra-api/internal/modules/model"
	"github.com/activitae/cra-api/internal/modules/repo"
	"github.com/activitae/cra-api/internal/modules/serializer"
	"github.com/activitae/cra-api/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CRAHandler struct {
	svc   service.CRAService
	stats service.StatsService
}

func NewCRAHandler(svc service.CRAService, stats service.StatsService) *CRAHandler {
	return &CRAHandler{svc: svc, stats: stats}
}

type ListCRAsReq struct {
	Status    string `form:"status" binding:"omitempty,oneof=draft submitted approved rejected"`
	Client    string `form:"client"`
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit,default=50"`
	Offset    int    `form:"offset,default=0"`
}

type ActivityReq struct {
	ID          string  `json:"id" binding:"omitempty,uuid"`
	Description string  `json:"description" binding:"required,min=3,max=500"`
	Hours       float64 `json:"hours" binding:"required,gt=0,lte=24,quarterhours"`
	Category    string  `json:"category" binding:"required,min=2,max=100"`
}

type CreateCRAReq struct {
	Date       string        `json:"date" binding:"required,datetime=2006-01-02"`
	Client     string        `json:"client" binding:"required,min=2,max=100"`
	Status     string        `json:"status" binding:"omitempty,oneof=draft submitted"`
	Activities []ActivityReq `json:"activities" binding:"required,min=1,dive"`
}

type UpdateCRAReq struct {
	Date       *string       `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Client     *string       `json:"client" binding:"omitempty,min=2,max=100"`
	Status     *string       `json:"status" binding:"omitempty,oneof=draft submitted approved rejected"`
	Activities []ActivityReq `json:"activities" binding:"omitempty,dive"`
}

func respondError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), nil))
	case errors.Is(err, repo.ErrCRANotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("no CRA found with this id"))
	default:
		c.JSON(http.StatusInternalServerError, serializer.InternalErr("request failed", err))
	}
}

func toActivityInputs(reqs []ActivityReq) ([]service.ActivityInput, error) {
	if reqs == nil {
		return nil, nil
	}
	out := make([]service.ActivityInput, len(reqs))
	for i, a := range reqs {
		in := service.ActivityInput{
			Description: a.Description,
			Hours:       a.Hours,
			Category:    a.Category,
		}
		if a.ID != "" {
			id, err := uuid.Parse(a.ID)
			if err != nil {
				return nil, err
			}
			in.ID = &id
		}
		out[i] = in
	}
	return out, nil
}

// ListCRAs godoc
//
//	@Summary		List CRAs
//	@Description	List activity reports with optional filters and offset pagination
//	@Tags			cra
//	@Produce		json
//	@Param			status		query	string	false	"Exact status match"	Enums(draft, submitted, approved, rejected)
//	@Param			client		query	string	false	"Case-insensitive client substring"
//	@Param			startDate	query	string	false	"Inclusive lower bound (YYYY-MM-DD)"
//	@Param			endDate		query	string	false	"Inclusive upper bound (YYYY-MM-DD)"
//	@Param			limit		query	integer	false	"Page size, default 50, max 200"
//	@Param			offset		query	integer	false	"Page offset, default 0"
//	@Success		200	{object}	serializer.Response{data=[]model.CRA}
//	@Failure		400	{object}	serializer.Response
//	@Router			/cras [get]
func (h *CRAHandler) ListCRAs(c *gin.Context) {
	req := ListCRAsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid filter parameters", err))
		return
	}

	in := service.ListCRAsInput{
		Filters: repo.Filters{
			Status: model.Status(req.Status),
			Client: req.Client,
		},
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.StartDate != "" {
		in.Filters.StartDate, _ = time.Parse(dateLayout, req.StartDate)
	}
	if req.EndDate != "" {
		in.Filters.EndDate, _ = time.Parse(dateLayout, req.EndDate)
	}

	out, err := h.svc.List(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OKPage(out.Items, serializer.Pagination{
		Total:   out.Total,
		Limit:   out.Limit,
		Offset:  out.Offset,
		HasMore: out.HasMore,
	}))
}

// GetStats godoc
//
//	@Summary		Dashboard aggregates
//	@Description	Report counts by status plus total reported hours
//	@Tags			cra
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=service.Stats}
//	@Router			/cras/stats [get]
func (h *CRAHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.OK(stats))
}

// GetCRA godoc
//
//	@Summary	Fetch one CRA
//	@Tags		cra
//	@Produce	json
//	@Param		id	path		string	true	"CRA ID"	format(uuid)
//	@Success	200	{object}	serializer.Response{data=model.CRA}
//	@Failure	400	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/cras/{id} [get]
func (h *CRAHandler) GetCRA(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid id", err))
		return
	}

	cra, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.OK(cra))
}

// CreateCRA godoc
//
//	@Summary		Create a CRA
//	@Description	Create an activity report with at least one activity. The total is computed server-side.
//	@Tags			cra
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateCRAReq	true	"New CRA"
//	@Success		201		{object}	serializer.Response{data=model.CRA}
//	@Failure		400		{object}	serializer.Response
//	@Router			/cras [post]
func (h *CRAHandler) CreateCRA(c *gin.Context) {
	req := CreateCRAReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid CRA payload", err))
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid date", err))
		return
	}
	activities, err := toActivityInputs(req.Activities)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid activity id", err))
		return
	}

	cra, err := h.svc.Create(c.Request.Context(), service.CreateCRAInput{
		Date:       date,
		Client:     req.Client,
		Status:     model.Status(req.Status),
		Activities: activities,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.OKMsg(cra, "CRA created successfully"))
}

// UpdateCRA godoc
//
//	@Summary		Update a CRA
//	@Description	Partial update. A supplied activities array replaces the whole set atomically.
//	@Tags			cra
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"CRA ID"	format(uuid)
//	@Param			body	body		UpdateCRAReq	true	"Changed fields"
//	@Success		200		{object}	serializer.Response{data=model.CRA}
//	@Failure		400		{object}	serializer.Response
//	@Failure		404		{object}	serializer.Response
//	@Router			/cras/{id} [put]
func (h *CRAHandler) UpdateCRA(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid id", err))
		return
	}

	req := UpdateCRAReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid CRA payload", err))
		return
	}

	in := service.UpdateCRAInput{}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid date", err))
			return
		}
		in.Date = &date
	}
	in.Client = req.Client
	if req.Status != nil {
		status := model.Status(*req.Status)
		in.Status = &status
	}
	in.Activities, err = toActivityInputs(req.Activities)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid activity id", err))
		return
	}

	cra, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OKMsg(cra, "CRA updated successfully"))
}

// DeleteCRA godoc
//
//	@Summary	Delete a CRA
//	@Tags		cra
//	@Produce	json
//	@Param		id	path		string	true	"CRA ID"	format(uuid)
//	@Success	200	{object}	serializer.Response
//	@Failure	400	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/cras/{id} [delete]
func (h *CRAHandler) DeleteCRA(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid id", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OKMsg(nil, "CRA deleted successfully"))
}
