package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentStatusScanAndValue(t *testing.T) {
	var st AppointmentStatus
	require.NoError(t, st.Scan([]byte("confirmed")))
	assert.Equal(t, StatusConfirmed, st)

	v, err := st.Value()
	require.NoError(t, err)
	assert.Equal(t, "confirmed", v)

	assert.Error(t, st.Scan("scheduled"))
	assert.Error(t, st.Scan(42))

	_, err = AppointmentStatus(0).Value()
	assert.Error(t, err)
}

func TestAppointmentStatusActive(t *testing.T) {
	assert.True(t, StatusPending.Active())
	assert.True(t, StatusConfirmed.Active())
	assert.True(t, StatusCompleted.Active())
	assert.False(t, StatusCancelled.Active())
	assert.False(t, AppointmentStatus(0).Active())
}

func TestAppointmentStatusJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Status AppointmentStatus `json:"status"`
	}{StatusCancelled})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"cancelled"}`, string(b))

	var st AppointmentStatus
	assert.Error(t, json.Unmarshal([]byte(`"archived"`), &st))
}
