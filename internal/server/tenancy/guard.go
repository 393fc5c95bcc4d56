// Package tenancy scopes every store operation to the authenticated user.
//
// A Guard is created once per request from the principal and handed to the
// repositories. They use Where to render the owner predicate into their SQL
// and Admit/Filter to re-check ownership of every row they read back.
package tenancy

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
)

// Owned is implemented by rows that belong to a single user.
type Owned interface {
	OwnerID() int64
}

// Guard carries the principal a request acts for.
type Guard struct {
	userID int64
}

// For returns a Guard for userID or common.ErrNoPrincipal when the id
// cannot belong to a user.
func For(userID int64) (Guard, error) {
	if userID <= 0 {
		return Guard{}, common.ErrNoPrincipal
	}
	return Guard{userID: userID}, nil
}

// FromContext builds a Guard from the principal stored by auth.WithUserID.
func FromContext(ctx context.Context) (Guard, error) {
	id, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return Guard{}, common.ErrNoPrincipal
	}
	return For(id)
}

func (g Guard) UserID() int64 { return g.userID }

// Valid reports whether g was built by For or FromContext.
func (g Guard) Valid() bool { return g.userID > 0 }

// Where renders "column = $pos" together with the argument to bind at pos.
func (g Guard) Where(column string, pos int) (string, any) {
	return fmt.Sprintf("%s = $%d", column, pos), g.userID
}

// Admit returns row if it belongs to the principal and common.ErrorNotFound
// otherwise, so foreign rows are indistinguishable from missing ones.
func Admit[T Owned](g Guard, row T) (T, error) {
	var zero T
	if !g.Valid() {
		return zero, common.ErrNoPrincipal
	}
	if row.OwnerID() != g.userID {
		return zero, common.ErrorNotFound
	}
	return row, nil
}

// Filter drops every row not owned by the principal.
func Filter[T Owned](g Guard, rows []T) []T {
	out := rows[:0:0]
	for _, r := range rows {
		if g.Valid() && r.OwnerID() == g.userID {
			out = append(out, r)
		}
	}
	return out
}
