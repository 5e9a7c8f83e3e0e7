package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greengrid/rectrade/internal/client/api"
	"github.com/greengrid/rectrade/internal/models"
)

func TestDashboard_NotSignedIn(t *testing.T) {
	lines := stubPrintln(t)
	a := newTestApp(&fakeAPI{}, "")

	require.NoError(t, a.Dashboard(context.Background()))

	assert.True(t, containsLine(*lines, "Sign in first"))
}

func TestDashboard_PrintsRefreshedSummary(t *testing.T) {
	lines := stubPrintln(t)

	f := &fakeAPI{
		loginRes: &api.AuthResult{Token: "tok-1", User: testUser()},
		holdings: &models.HoldingsSummary{
			TotalValue:       2456789,
			TotalQuantity:    15420,
			UniqueFacilities: []string{"FAC-001", "FAC-002"},
			EnergyTypes:      []string{"solar", "wind"},
		},
		orders: []models.Order{
			{ID: "o-1", Status: models.OrderActive},
			{ID: "o-2", Status: models.OrderFilled},
		},
		txs: []models.Transaction{
			{ID: "t-1", Status: models.TransactionCompleted, Quantity: 100, CompletedAt: time.Now().UTC()},
		},
	}
	a := newTestApp(f, "")
	loginTestUser(t, a)

	require.NoError(t, a.Dashboard(context.Background()))

	assert.True(t, containsLine(*lines, "2456789.00 AED"))
	assert.True(t, containsLine(*lines, "15420"))
	assert.True(t, containsLine(*lines, "Active orders:         1"))
	assert.True(t, containsLine(*lines, "Traded this month:     100"))
}

func TestTabs_NotSignedIn(t *testing.T) {
	lines := stubPrintln(t)
	a := newTestApp(&fakeAPI{}, "")

	require.NoError(t, a.Tabs(context.Background()))

	assert.True(t, containsLine(*lines, "Sign in first"))
}

func TestTabs_TraderSeesNoAdminOrFacilities(t *testing.T) {
	lines := stubPrintln(t)
	f := &fakeAPI{loginRes: &api.AuthResult{Token: "tok-1", User: testUser()}}
	a := newTestApp(f, "")
	loginTestUser(t, a)

	require.NoError(t, a.Tabs(context.Background()))

	assert.True(t, containsLine(*lines, "overview"))
	assert.True(t, containsLine(*lines, "trade"))
	assert.True(t, containsLine(*lines, "analytics"))
	assert.True(t, containsLine(*lines, "wallet"))
	assert.False(t, containsLine(*lines, "admin"))
	assert.False(t, containsLine(*lines, "facilities"))
}
