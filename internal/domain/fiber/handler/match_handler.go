package handler

import (
	"context"
	"errors"
	"time"

	"github.com/fadilmartias/skillmatch/internal/middleware"
	"github.com/fadilmartias/skillmatch/internal/usecase"
	"github.com/fadilmartias/skillmatch/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc      *usecase.MatchingUsecase
	timeout time.Duration
}

func NewMatchHandler(uc *usecase.MatchingUsecase, timeout time.Duration) *MatchHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MatchHandler{uc: uc, timeout: timeout}
}

func (h *MatchHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/match/project/:id", middleware.RateLimiter(10, 10*time.Second), h.MatchProject)
	app.Post("/match/freelancer/:id", middleware.RateLimiter(10, 10*time.Second), h.MatchFreelancer)
	app.Get("/matches/project/:id", h.ListProjectMatches)
	app.Get("/matches/freelancer/:id", h.ListFreelancerMatches)
}

func (h *MatchHandler) MatchProject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c, err)
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	res, err := h.uc.MatchProject(ctx, id, h.params(c))
	if err != nil {
		return h.fail(c, "failed to match project", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success match project",
		Data:    res,
	})
}

func (h *MatchHandler) MatchFreelancer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c, err)
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	res, err := h.uc.MatchFreelancer(ctx, id, h.params(c))
	if err != nil {
		return h.fail(c, "failed to match freelancer", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success match freelancer",
		Data:    res,
	})
}

func (h *MatchHandler) ListProjectMatches(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c, err)
	}
	records, page, err := h.uc.ListProjectMatches(c.UserContext(), id, c.QueryInt("page", 1), c.QueryInt("page_size", 0))
	if err != nil {
		return h.fail(c, "failed to list project matches", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success get project matches",
		Data:       records,
		Pagination: page,
	})
}

func (h *MatchHandler) ListFreelancerMatches(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c, err)
	}
	records, page, err := h.uc.ListFreelancerMatches(c.UserContext(), id, c.QueryInt("page", 1), c.QueryInt("page_size", 0))
	if err != nil {
		return h.fail(c, "failed to list freelancer matches", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success get freelancer matches",
		Data:       records,
		Pagination: page,
	})
}

func (h *MatchHandler) params(c *fiber.Ctx) usecase.MatchParams {
	return usecase.MatchParams{
		Options: parseMatchOptions(c.Body()),
		DryRun:  c.QueryBool("dry_run", false),
	}
}

func (h *MatchHandler) fail(c *fiber.Ctx, message string, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrProjectNotFound), errors.Is(err, usecase.ErrFreelancerNotFound):
		code = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, usecase.ErrInvalidQuery):
		code = fiber.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		code = fiber.StatusGatewayTimeout
		message = "matching timed out"
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: message,
	}, err)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, util.NewFormError("invalid id", map[string]string{"id": "must be a UUID"})
	}
	return id, nil
}

func invalidID(c *fiber.Ctx, err error) error {
	format := util.ErrorResponseFormat{Code: fiber.StatusBadRequest, Message: "invalid request"}
	var formErr *util.FormError
	if errors.As(err, &formErr) {
		format.Message = formErr.Message
		format.Details = formErr.Errors
	}
	return util.ErrorResponse(c, format)
}
