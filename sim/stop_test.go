package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestStop_EstimatedDepartureTime_WaitsForWindowMin(t *testing.T) {
	s := Stop[r2.Vec]{EstimatedArrivalTime: 5, TimeWindow: TimeWindow{Min: 10, Max: 20}}
	assert.Equal(t, 10.0, s.EstimatedDepartureTime())
}

func TestStop_EstimatedDepartureTime_DeparturesOnArrivalWhenLate(t *testing.T) {
	s := Stop[r2.Vec]{EstimatedArrivalTime: 15, TimeWindow: TimeWindow{Min: 10, Max: 20}}
	assert.Equal(t, 15.0, s.EstimatedDepartureTime())
}

func TestStop_ServiceTime_MatchesDepartureTime(t *testing.T) {
	s := Stop[r2.Vec]{EstimatedArrivalTime: 3, TimeWindow: TimeWindow{Min: 0, Max: 20}}
	assert.Equal(t, s.EstimatedDepartureTime(), s.ServiceTime())
}

func TestNewCurrentPositionElement_HasZeroWidthWindow(t *testing.T) {
	s := newCurrentPositionElement(7.0, r2.Vec{X: 1, Y: 2}, 3)
	assert.Equal(t, ActionInternal, s.Action)
	assert.Equal(t, TimeWindow{Min: 0, Max: 0}, s.TimeWindow)
	assert.Equal(t, uint(3), s.OccupancyAfterServicing)
	assert.Equal(t, 7.0, s.EstimatedArrivalTime)
	assert.Equal(t, InternalRequestID, s.Request.ID)
}
