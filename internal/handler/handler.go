package handler

import (
	"net/http"

	"github.com/IBM/sarama"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Astemirdum/stockroom-service/internal/errs"
	"github.com/Astemirdum/stockroom-service/internal/model"
	"github.com/Astemirdum/stockroom-service/pkg/validate"
	_ "github.com/Astemirdum/stockroom-service/swagger"
)

type Handler struct {
	svc      StockroomService
	enqueuer Enqueuer
	log      *zap.Logger
}

func New(svc StockroomService, log *zap.Logger, producer sarama.SyncProducer, decisionsTopic string) *Handler {
	return &Handler{
		svc:      svc,
		enqueuer: NewEnqueuer(producer, decisionsTopic, log),
		log:      log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(requestLoggerConfig(h.log)),
		middleware.RequestID(),
		newRateLimiterMW(apiRPS),
	)

	api.POST("/items", h.CreateItem)
	api.GET("/items", h.ListItems)
	api.GET("/items/:itemId/availability", h.GetAvailability)
	api.POST("/items/:itemId/adjust", h.AdjustStock)

	api.POST("/requests", h.CreateRequest)
	api.GET("/requests", h.ListRequests)
	api.GET("/requests/:requestId", h.GetRequest)
	api.POST("/requests/:requestId/decide", h.Decide)
	api.POST("/requests/:requestId/close", h.CloseRequest)

	api.POST("/reconciliations", h.StartReconciliation)
	api.POST("/reconciliations/:sessionId/scan", h.RecordScan)
	api.POST("/reconciliations/:sessionId/close", h.CloseReconciliation)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// CreateItem godoc
//
//	@Summary	register a lendable item
//	@Tags		items
//	@Router		/api/v1/items [post]
func (h *Handler) CreateItem(c echo.Context) error {
	var req model.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.svc.CreateItem(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) ListItems(c echo.Context) error {
	items, err := h.svc.ListItems(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetAvailability godoc
//
//	@Summary	read {total, reserved, available} for an item
//	@Tags		items
//	@Router		/api/v1/items/{itemId}/availability [get]
func (h *Handler) GetAvailability(c echo.Context) error {
	itemID := c.Param("itemId")
	if itemID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "empty itemId")
	}
	av, err := h.svc.GetAvailability(c.Request().Context(), itemID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, av)
}

func (h *Handler) AdjustStock(c echo.Context) error {
	itemID := c.Param("itemId")
	if itemID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "empty itemId")
	}
	adminID, err := userName(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req model.AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.AdminID = adminID
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	av, err := h.svc.AdjustStock(c.Request().Context(), itemID, req.Delta, req.AdminID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, av)
}

// CreateRequest godoc
//
//	@Summary	submit a loan / supply request (records intent, reserves nothing)
//	@Tags		requests
//	@Router		/api/v1/requests [post]
func (h *Handler) CreateRequest(c echo.Context) error {
	requesterID, err := userName(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req model.CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.RequesterID = requesterID
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.svc.CreateRequest(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetRequest(c echo.Context) error {
	requestID := c.Param("requestId")
	if requestID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "empty requestId")
	}
	res, err := h.svc.GetRequest(c.Request().Context(), requestID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) ListRequests(c echo.Context) error {
	res, err := h.svc.ListRequests(c.Request().Context(), c.QueryParam("requesterId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Decide godoc
//
//	@Summary	approve or reject a pending request
//	@Tags		requests
//	@Router		/api/v1/requests/{requestId}/decide [post]
func (h *Handler) Decide(c echo.Context) error {
	requestID := c.Param("requestId")
	if requestID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "empty requestId")
	}
	deciderID, err := userName(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req model.DecideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.DeciderID = deciderID
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.svc.Decide(c.Request().Context(), requestID, req.DeciderID, req.Decision, req.Reason)
	if err != nil {
		return httpError(err)
	}
	h.enqueuer.EnqueueDecision(model.DecisionEvent{
		RequestID: res.ID,
		ItemID:    res.ItemID,
		Status:    res.Status,
		DeciderID: deciderID,
		Quantity:  res.Quantity,
	})
	return c.JSON(http.StatusOK, res)
}

// CloseRequest godoc
//
//	@Summary	return a loan / complete a supply request, releasing its reservation
//	@Tags		requests
//	@Router		/api/v1/requests/{requestId}/close [post]
func (h *Handler) CloseRequest(c echo.Context) error {
	requestID := c.Param("requestId")
	if requestID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "empty requestId")
	}
	res, err := h.svc.CloseRequest(c.Request().Context(), requestID)
	if err != nil {
		return httpError(err)
	}
	h.enqueuer.EnqueueDecision(model.DecisionEvent{
		RequestID: res.ID,
		ItemID:    res.ItemID,
		Status:    res.Status,
		Quantity:  res.Quantity,
	})
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) StartReconciliation(c echo.Context) error {
	var req model.StartReconciliationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sessionID, err := h.svc.StartReconciliation(c.Request().Context(), req.ItemIDs)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"sessionId": sessionID})
}

func (h *Handler) RecordScan(c echo.Context) error {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "empty sessionId")
	}
	var req model.RecordScanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.RecordScan(c.Request().Context(), sessionID, req.ItemID, req.Delta)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) CloseReconciliation(c echo.Context) error {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "empty sessionId")
	}
	report, err := h.svc.CloseReconciliation(c.Request().Context(), sessionID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// httpError maps the error taxonomy to transport codes. Conflict errors are
// returned whole so the response body keeps their detail fields.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrItemNotFound),
		errors.Is(err, errs.ErrRequestNotFound),
		errors.Is(err, errs.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidQuantity),
		errors.Is(err, errs.ErrReasonRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrAlreadyDecided),
		errors.Is(err, errs.ErrNotApproved),
		errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrWouldUnderflow):
		return echo.NewHTTPError(http.StatusConflict, conflictBody(err))
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// conflictBody surfaces the typed detail (current status, availability
// snapshot) next to the message.
func conflictBody(err error) echo.Map {
	body := echo.Map{"message": err.Error()}
	var insufficient *errs.InsufficientStockError
	if errors.As(err, &insufficient) {
		body["itemId"] = insufficient.ItemID
		body["requested"] = insufficient.Requested
		body["total"] = insufficient.Total
		body["reserved"] = insufficient.Reserved
		body["available"] = insufficient.Total - insufficient.Reserved
	}
	var decided *errs.AlreadyDecidedError
	if errors.As(err, &decided) {
		body["status"] = decided.Status
	}
	var notApproved *errs.NotApprovedError
	if errors.As(err, &notApproved) {
		body["status"] = notApproved.Status
	}
	var underflow *errs.WouldUnderflowError
	if errors.As(err, &underflow) {
		body["total"] = underflow.Total
		body["reserved"] = underflow.Reserved
	}
	return body
}
