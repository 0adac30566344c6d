package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_StateAndData(t *testing.T) {
	sm := NewManager()
	const id = int64(42)

	assert.Equal(t, StateNone, sm.GetState(id))

	sm.SetState(id, StateLoginEmail)
	sm.SetData(id, DataRole, "admin")
	assert.Equal(t, StateLoginEmail, sm.GetState(id))
	assert.Equal(t, "admin", sm.GetString(id, DataRole))
	assert.Equal(t, "", sm.GetString(id, DataEmail))

	data := sm.GetAllData(id)
	data[DataRole] = "guest"
	assert.Equal(t, "admin", sm.GetString(id, DataRole))

	sm.SetState(id, StateNone)
	assert.Equal(t, StateNone, sm.GetState(id))
	_, ok := sm.GetData(id, DataRole)
	assert.False(t, ok)
}

func TestManager_FilterSurvivesClearState(t *testing.T) {
	sm := NewManager()
	const id = int64(7)

	sm.SetFilter(id, "occupied")
	sm.SetState(id, StateBookingDates)
	sm.ClearState(id)
	assert.Equal(t, "occupied", sm.GetFilter(id))

	sm.Forget(id)
	assert.Equal(t, "", sm.GetFilter(id))
}
