package hybrid

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPieceReference = errors.New("invalid piece reference")
	ErrIllegalAction         = errors.New("illegal action")
	ErrOccupiedTarget        = errors.New("target occupied")
	ErrEmptyHistory          = errors.New("empty history")
	ErrNoLegalMoves          = errors.New("no legal moves")
	ErrUnknownLayout         = errors.New("unknown layout")
	ErrInvalidDiagram        = errors.New("invalid diagram")
	ErrInvalidSnapshot       = errors.New("invalid snapshot")
)

// ActionError describes a rejected action request.
type ActionError struct {
	Op      string
	PieceID PieceID
	Pos     Position
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s %s to %d,%d: %v", e.Op, e.PieceID, e.Pos.X, e.Pos.Y, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

func actionErr(op string, id PieceID, pos Position, err error) error {
	return &ActionError{Op: op, PieceID: id, Pos: pos, Err: err}
}
