package repository

import (
	"dinebook/internal/domains/reservation/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotKey(t *testing.T) {
	assert.Equal(t, "table-1|2025-06-01", SlotKey("table-1", "2025-06-01"))
	assert.NotEqual(t, SlotKey("table-1", "2025-06-01"), SlotKey("table-1", "2025-06-02"))
}

func TestInStatus(t *testing.T) {
	where, args := InStatus("reservation-1", model.ActiveStatuses).GetWhereClause()

	assert.Equal(t, "(reservations.id = :id AND reservations.status IN (:from_status_0, :from_status_1))", where)
	assert.Equal(t, "reservation-1", args["id"])
	assert.Equal(t, model.StatusPending, args["from_status_0"])
	assert.Equal(t, model.StatusConfirmed, args["from_status_1"])
}
