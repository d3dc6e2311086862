package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

const (
	getActionsDefaultLimit = 20
	getActionsMaxLimit     = 100
)

type getActionsRequest struct {
	Limit  int32 `query:"limit"`
	Offset int32 `query:"offset"`
}

func (r getActionsRequest) Validate() error {
	var errList []error
	if r.Limit < 0 {
		errList = append(errList, errors.New("limit must be greater than or equal to 0"))
	}
	if r.Limit > getActionsMaxLimit {
		errList = append(errList, errors.Errorf("limit must be less than or equal to %d", getActionsMaxLimit))
	}
	if r.Offset < 0 {
		errList = append(errList, errors.New("offset must be greater than or equal to 0"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (r *getActionsRequest) ParseDefault() {
	if r.Limit == 0 {
		r.Limit = getActionsDefaultLimit
	}
}

type getActionsResponse = HttpResponse[[]actionResponse]

func (h *HttpHandler) GetActions(ctx *fiber.Ctx) (err error) {
	var req getActionsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	req.ParseDefault()

	actions, err := h.journal.GetActions(ctx.UserContext(), req.Limit, req.Offset)
	if err != nil {
		return errors.Wrap(err, "error during GetActions")
	}
	resp := lo.Map(actions, mapAction)
	return errors.WithStack(ctx.JSON(getActionsResponse{Result: &resp}))
}
