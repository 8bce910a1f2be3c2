package reelstore

import (
	"context"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
)

// Confirmer is the blocking yes/no prompt shown before a delete.
type Confirmer interface {
	Confirm(ctx context.Context, reel domain.Reel) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(ctx context.Context, reel domain.Reel) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, reel domain.Reel) bool { return f(ctx, reel) }

// Confirmed is a Confirmer carrying an answer that was already given,
// e.g. a form field set by the browser's confirm() dialog.
type Confirmed bool

// Confirm implements Confirmer.
func (c Confirmed) Confirm(context.Context, domain.Reel) bool { return bool(c) }
