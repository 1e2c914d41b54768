package cases

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/caseflow/caseflow/internal/platform/auth"
	"github.com/caseflow/caseflow/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := auth.RequireRole("admin", "agent", "hospital", "finance")
	any := auth.RequireRole("admin", "agent", "hospital", "finance", "client")

	g := api.Group("/cases")
	g.POST("", h.CreateCase, auth.RequireRole("agent"))
	g.GET("", h.ListCases, any)
	g.GET("/:id", h.GetCase, any)
	g.GET("/:id/progress", h.GetProgress, any)
	g.GET("/:id/transitions", h.ListTransitions, staff)
	g.POST("/:id/transitions", h.ApplyTransition, staff)
	g.GET("/:id/documents/permissions", h.DocumentPermissions, staff)
	g.POST("/:id/documents", h.AddDocument, staff)
	g.DELETE("/:id/documents/:docId", h.RemoveDocument, staff)
	g.POST("/:id/payments", h.AddPayment, staff)
	g.POST("/:id/comments", h.AddComment, any)
	g.PUT("/:id/visa", h.UpdateVisa, staff)
	g.PUT("/:id/plan", h.SaveTreatmentPlan, auth.RequireRole("hospital"))
	g.POST("/:id/assign-hospital", h.AssignHospital, auth.RequireRole("admin"))
	g.POST("/:id/assign-university", h.AssignUniversity, auth.RequireRole("admin"))
}

func actorFrom(c echo.Context) Actor {
	ident := auth.IdentityFromContext(c.Request().Context())
	if ident == nil {
		return Actor{}
	}
	return Actor{
		ID:            ident.ID,
		Name:          ident.Name,
		Role:          Role(ident.Role),
		AgentType:     AgentType(ident.AgentType),
		HospitalIDs:   ident.HospitalIDs,
		UniversityIDs: ident.UniversityIDs,
	}
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoteRequired), errors.Is(err, ErrUploadNotAllowed):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrTransitionDenied):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) CreateCase(c echo.Context) error {
	var in Case
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor := actorFrom(c)
	if in.AgentID == "" {
		in.AgentID = actor.ID
	}
	out := h.svc.CreateCase(c.Request().Context(), &in, actor)
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) GetCase(c echo.Context) error {
	cs, err := h.svc.GetCase(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) ListCases(c echo.Context) error {
	pg := pagination.FromContext(c)
	ctx := c.Request().Context()

	var (
		items []*Case
		total int
		err   error
	)
	switch {
	case c.QueryParam("client_id") != "":
		items, total, err = h.svc.ListByClient(ctx, c.QueryParam("client_id"), pg.Limit, pg.Offset)
	case c.QueryParam("agent_id") != "":
		items, total, err = h.svc.ListByAgent(ctx, c.QueryParam("agent_id"), pg.Limit, pg.Offset)
	case c.QueryParam("hospital_id") != "":
		items, total, err = h.svc.ListByHospital(ctx, c.QueryParam("hospital_id"), pg.Limit, pg.Offset)
	case c.QueryParam("university_id") != "":
		items, total, err = h.svc.ListByUniversity(ctx, c.QueryParam("university_id"), pg.Limit, pg.Offset)
	case c.QueryParam("status") != "":
		items, total, err = h.svc.ListByStatus(ctx, Status(c.QueryParam("status")), pg.Limit, pg.Offset)
	default:
		return echo.NewHTTPError(http.StatusBadRequest,
			"one of client_id, agent_id, hospital_id, university_id or status is required")
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type progressResponse struct {
	Status   Status  `json:"status"`
	Index    int     `json:"index"`
	Of       int     `json:"of"`
	Fraction float64 `json:"fraction"`
}

func (h *Handler) GetProgress(c echo.Context) error {
	cs, err := h.svc.GetCase(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, progressResponse{
		Status:   cs.Status,
		Index:    ProgressIndex(cs.Status),
		Of:       TrunkLength(),
		Fraction: Progress(cs.Status),
	})
}

type transitionsResponse struct {
	Current Status   `json:"current"`
	Next    []Status `json:"next"`
}

func (h *Handler) ListTransitions(c echo.Context) error {
	ctx := c.Request().Context()
	cs, err := h.svc.GetCase(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	next, err := h.svc.LegalNextStatuses(ctx, c.Param("id"), actorFrom(c))
	if err != nil {
		return httpError(err)
	}
	if next == nil {
		next = []Status{}
	}
	return c.JSON(http.StatusOK, transitionsResponse{Current: cs.Status, Next: next})
}

type transitionRequest struct {
	Status Status `json:"status"`
	Note   string `json:"note"`
}

func (h *Handler) ApplyTransition(c echo.Context) error {
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !req.Status.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}
	cs, err := h.svc.ApplyTransition(c.Request().Context(), c.Param("id"), actorFrom(c), req.Status, req.Note)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cs)
}

type documentGateResponse struct {
	Available []DocumentType `json:"available"`
	Required  []DocumentType `json:"required"`
	Missing   []DocumentType `json:"missing"`
}

func (h *Handler) DocumentPermissions(c echo.Context) error {
	perms, missing, err := h.svc.DocumentPermissionsFor(c.Request().Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		return httpError(err)
	}
	resp := documentGateResponse{Available: perms.Available, Required: perms.Required, Missing: missing}
	if resp.Available == nil {
		resp.Available = []DocumentType{}
	}
	if resp.Required == nil {
		resp.Required = []DocumentType{}
	}
	if resp.Missing == nil {
		resp.Missing = []DocumentType{}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) AddDocument(c echo.Context) error {
	var doc Document
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cs, err := h.svc.AddDocument(c.Request().Context(), c.Param("id"), actorFrom(c), doc)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, cs)
}

func (h *Handler) RemoveDocument(c echo.Context) error {
	cs, err := h.svc.RemoveDocument(c.Request().Context(), c.Param("id"), actorFrom(c), c.Param("docId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) AddPayment(c echo.Context) error {
	var p Payment
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cs, err := h.svc.AddPayment(c.Request().Context(), c.Param("id"), actorFrom(c), p)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, cs)
}

type commentRequest struct {
	Body string `json:"body"`
}

func (h *Handler) AddComment(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Body == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "body is required")
	}
	cs, err := h.svc.AddComment(c.Request().Context(), c.Param("id"), actorFrom(c), req.Body)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, cs)
}

func (h *Handler) UpdateVisa(c echo.Context) error {
	var v Visa
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cs, err := h.svc.UpdateVisa(c.Request().Context(), c.Param("id"), actorFrom(c), v)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) SaveTreatmentPlan(c echo.Context) error {
	var plan TreatmentPlan
	if err := c.Bind(&plan); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cs, err := h.svc.SaveTreatmentPlan(c.Request().Context(), c.Param("id"), actorFrom(c), plan)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cs)
}

type assignRequest struct {
	HospitalID   string `json:"hospital_id"`
	UniversityID string `json:"university_id"`
}

func (h *Handler) AssignHospital(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.HospitalID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "hospital_id is required")
	}
	cs, err := h.svc.AssignHospital(c.Request().Context(), c.Param("id"), actorFrom(c), req.HospitalID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) AssignUniversity(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.UniversityID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "university_id is required")
	}
	cs, err := h.svc.AssignUniversity(c.Request().Context(), c.Param("id"), actorFrom(c), req.UniversityID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cs)
}
