package db

import (
	"errors"
	"fmt"
)

// 错误种类；controllers 用 errors.Is 归类映射 HTTP 状态码
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrExhausted  = errors.New("no units remaining")
	ErrState      = errors.New("illegal state")
	ErrConflict   = errors.New("conflict")
)

// 具体失败条件，均可 errors.Is 到上面的种类
var (
	ErrExpired          = fmt.Errorf("%w: purchase expired", ErrExhausted)
	ErrTicketRequired   = fmt.Errorf("%w: ticket required before reclone", ErrState)
	ErrStepLocked       = fmt.Errorf("%w: step locked", ErrState)
	ErrStepNotCompleted = fmt.Errorf("%w: step not completed", ErrState)
	ErrStepsIncomplete  = fmt.Errorf("%w: not all steps completed", ErrState)
	ErrDuplicatePending = fmt.Errorf("%w: duplicate pending request", ErrState)
	ErrAlreadyReviewed  = fmt.Errorf("%w: request already reviewed", ErrState)
	ErrTicketOpen       = fmt.Errorf("%w: asset already holds an open ticket", ErrState)
	ErrContractHeld     = fmt.Errorf("%w: asset already holds an active contract", ErrState)
	ErrNotActive        = fmt.Errorf("%w: assignment not active", ErrState)
)
