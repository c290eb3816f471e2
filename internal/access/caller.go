package access

import (
	"context"

	"github.com/google/uuid"
)

// Caller is the per-request identity resolved from the caller's profile row.
// It is threaded explicitly through handlers, services and scopes; there is
// no ambient session state.
type Caller struct {
	ID   uuid.UUID
	Role Role

	// ClientCompanyID is set only for client-role profiles. A client caller
	// without a company sees empty result sets, never an error.
	ClientCompanyID *uuid.UUID
}

// CompanyID returns the caller's client company, if any.
func (c Caller) CompanyID() (uuid.UUID, bool) {
	if c.ClientCompanyID == nil || *c.ClientCompanyID == uuid.Nil {
		return uuid.Nil, false
	}
	return *c.ClientCompanyID, true
}

type callerKey struct{}

// GinKey is where middleware stores the resolved Caller on the gin context.
const GinKey = "caller"

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}
