package broker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarathi-rto/sarathi/internal/api"
)

func TestFeeModalRendersServerBreakdownVerbatim(t *testing.T) {
	t.Parallel()

	m := NewFeeModal(api.New("http://localhost:0"), 1)

	// The server's numbers are displayed as-is, even when they don't
	// add up; the client never recomputes totals.
	m.Update(FeeResultMsg{Estimate: &api.FeeEstimate{
		Breakdown: api.FeeBreakdown{
			BaseFee:          1500,
			ServiceFee:       1500,
			BrokerCommission: 225,
			TaxGST:           270,
			Total:            9999.99,
		},
	}})

	out := m.View()
	assert.Contains(t, out, "9999.99")
	assert.Contains(t, out, "1500.00")
	assert.Contains(t, out, "225.00")
	assert.Contains(t, out, "270.00")
}

func TestFeeModalProceedRequiresEstimate(t *testing.T) {
	t.Parallel()

	m := NewFeeModal(api.New("http://localhost:0"), 1)

	cmd, closed, proceed := m.Update(key("p"))
	assert.Nil(t, cmd)
	assert.False(t, closed)
	assert.False(t, proceed, "proceed must be refused without an estimate")
	assert.NotEmpty(t, m.errMsg)

	m.Update(FeeResultMsg{Estimate: &api.FeeEstimate{
		Breakdown: api.FeeBreakdown{Total: 100},
	}})
	_, closed, proceed = m.Update(key("p"))
	assert.True(t, closed)
	assert.True(t, proceed)
}

func TestFeeModalSelectionChangeInvalidatesEstimate(t *testing.T) {
	t.Parallel()

	m := NewFeeModal(api.New("http://localhost:0"), 1)
	m.Update(FeeResultMsg{Estimate: &api.FeeEstimate{
		Breakdown: api.FeeBreakdown{Total: 100},
	}})
	assert.NotNil(t, m.Estimate())

	m.Update(key("right"))
	assert.Nil(t, m.Estimate(), "changing the selection drops the stale estimate")
}

func TestFeeModalCycleOptions(t *testing.T) {
	t.Parallel()

	m := NewFeeModal(api.New("http://localhost:0"), 1)

	assert.Equal(t, "New Registration", m.ApplicationType())
	m.Update(key("right"))
	assert.Equal(t, "Renewal", m.ApplicationType())
	m.Update(key("left"))
	m.Update(key("left"))
	assert.Equal(t, "Transfer", m.ApplicationType(), "cycling wraps around")

	var mod = NewFeeModal(api.New("http://localhost:0"), 1)
	mod.Update(key("down"))
	mod.Update(key("right"))
	assert.Equal(t, "Four Wheeler", mod.VehicleClass())
}

func TestFeeModalEscCloses(t *testing.T) {
	t.Parallel()

	m := NewFeeModal(api.New("http://localhost:0"), 1)
	_, closed, proceed := m.Update(key("esc"))
	assert.True(t, closed)
	assert.False(t, proceed)
}

func TestFeeModalErrorMessage(t *testing.T) {
	t.Parallel()

	m := NewFeeModal(api.New("http://localhost:0"), 1)
	m.Update(FeeResultMsg{Err: assert.AnError})

	assert.Nil(t, m.Estimate())
	assert.True(t, strings.Contains(m.View(), "Could not calculate fees"))
}
