package cli

import (
	"context"
	"fmt"

	"github.com/greengrid/rectrade/internal/authz"
)

// Dashboard refreshes the account summary and prints it. Failed fetches are
// logged by the aggregator and leave the affected figures at their previous
// values, so a partial refresh still prints a complete summary.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first.")
		return nil
	}

	s := a.dash.Refresh(ctx)

	printlnFn(fmt.Sprintf("Portfolio value:       %.2f AED", s.TotalValue))
	printlnFn(fmt.Sprintf("Certificates held:     %.0f", s.TotalQuantity))
	printlnFn(fmt.Sprintf("Facilities:            %d", s.UniqueFacilityCount))
	printlnFn(fmt.Sprintf("Energy types:          %d", s.EnergyTypeCount))
	printlnFn(fmt.Sprintf("Active orders:         %d", s.ActiveOrderCount))
	printlnFn(fmt.Sprintf("Traded this month:     %.0f", s.MonthlyTradingQuantity))
	return nil
}

// Tabs lists the platform sections visible for the current role.
func (a *App) Tabs(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Sign in first.")
		return nil
	}

	for _, t := range authz.VisibleTabs(authz.DefaultTabs, u.Role) {
		printlnFn(fmt.Sprintf("  %-12s %s", t.ID, t.Title))
	}
	return nil
}
