package bizerror

import (
	"errors"
	"net/http"

	"rugcraft/domain/stage"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrTooManyRequest  = errors.New("too many request")
)

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}

// ErrWorkOrderNotFound reports an id which matches no live work order record.
type ErrWorkOrderNotFound struct {
}

func (e *ErrWorkOrderNotFound) Error() string {
	return "Work order not found"
}
func (e *ErrWorkOrderNotFound) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusNotFound, Code: "workorder.not_found",
		Message: "Work order not found", Data: nil}
}

// ErrFinalStage reports an advance request against a work order which is
// already at the terminal pipeline stage.
type ErrFinalStage struct {
	CurrentStage stage.Stage
}

type FinalStageDetail struct {
	CurrentStage stage.Stage `json:"current_stage"`
}

func (e *ErrFinalStage) Error() string {
	return "Work order is already at the final stage"
}
func (e *ErrFinalStage) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "workorder.already_at_final_stage",
		Message: "Work order is already at the final stage", Data: FinalStageDetail{CurrentStage: e.CurrentStage}}
}

// ErrStageConflict reports more than one active stage history entry for a
// single work order, which a correct transition history never produces.
type ErrStageConflict struct {
	WorkOrderID string
}

func (e *ErrStageConflict) Error() string {
	return "work order has more than one active stage entry"
}
func (e *ErrStageConflict) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusConflict, Code: "workorder.stage_conflict",
		Message: "work order has more than one active stage entry", Data: e.WorkOrderID}
}
