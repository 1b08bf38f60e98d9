package auth

import (
	"context"
	"fmt"

	"langodata/internal/core/apperror"
	appctx "langodata/internal/core/context"
	"langodata/internal/domain/catalog"
	"langodata/internal/domain/license"
)

// EnvironmentGate is the precondition check run before any catalog or
// database work: the install's license must be valid and the session user
// must be allowed to read the requested data group.
type EnvironmentGate struct {
	license *license.Manager
}

// NewEnvironmentGate creates the gate.
func NewEnvironmentGate(lic *license.Manager) *EnvironmentGate {
	return &EnvironmentGate{license: lic}
}

// Check validates license and user access. The returned error's message is
// surfaced verbatim to the caller.
func (g *EnvironmentGate) Check(ctx context.Context, group catalog.DataGroup) error {
	if !g.license.Status() {
		return apperror.NewLicenseInvalid("Invalid license. Please validate your license.")
	}

	if !appctx.HasDataGroup(ctx, string(group)) {
		return apperror.NewForbidden(fmt.Sprintf("User authentication failed for %s.", group))
	}
	return nil
}
