package booking

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
)

func TestDecodeFlexibleStrings_NativeArray(t *testing.T) {
	got, err := decodeFlexibleStrings([]byte(`["a","b"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestDecodeFlexibleStrings_EncodedString(t *testing.T) {
	// Legacy-строки: массив закодирован внутри JSON-строки
	got, err := decodeFlexibleStrings([]byte(`"[\"a\",\"b\"]"`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestDecodeFlexibleStrings_NullAndEmpty(t *testing.T) {
	got, err := decodeFlexibleStrings(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = decodeFlexibleStrings([]byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = decodeFlexibleStrings([]byte(`""`))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeFlexibleStrings_Garbage(t *testing.T) {
	_, err := decodeFlexibleStrings([]byte(`123`))
	assert.Error(t, err)

	_, err = decodeFlexibleStrings([]byte(`"not an array"`))
	assert.Error(t, err)
}

func TestRawSelection_ToDomain_ExplicitDates(t *testing.T) {
	roomID := uuid.New()
	raw := &rawSelection{
		ID:            uuid.New(),
		BookingID:     uuid.New(),
		RoomIDs:       []byte(`["` + roomID.String() + `"]`),
		DatesReserved: []byte(`["2026-01-10","2026-01-11T18:30:00Z"]`),
	}

	sel, err := raw.toDomain()
	require.NoError(t, err)

	require.Len(t, sel.RoomIDs, 1)
	assert.Equal(t, roomID, sel.RoomIDs[0])

	assert.Equal(t, domain.ReservedExplicit, sel.Reserved.Kind)
	require.Len(t, sel.Reserved.Dates, 2)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), sel.Reserved.Dates[0])
	// RFC3339 значения нормализуются к UTC полуночи
	assert.Equal(t, time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC), sel.Reserved.Dates[1])
}

func TestRawSelection_ToDomain_ImpliedRange(t *testing.T) {
	raw := &rawSelection{
		ID:        uuid.New(),
		BookingID: uuid.New(),
		RoomIDs:   []byte(`["` + uuid.New().String() + `"]`),
		CheckIn:   sql.NullTime{Time: time.Date(2026, 1, 12, 14, 0, 0, 0, time.UTC), Valid: true},
		CheckOut:  sql.NullTime{Time: time.Date(2026, 1, 15, 11, 0, 0, 0, time.UTC), Valid: true},
	}

	sel, err := raw.toDomain()
	require.NoError(t, err)

	assert.Equal(t, domain.ReservedImpliedRange, sel.Reserved.Kind)
	require.NotNil(t, sel.Reserved.CheckIn)
	require.NotNil(t, sel.Reserved.CheckOut)
	assert.Equal(t, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), *sel.Reserved.CheckIn)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), *sel.Reserved.CheckOut)
}

func TestRawSelection_ToDomain_BadRoomID(t *testing.T) {
	raw := &rawSelection{
		ID:        uuid.New(),
		BookingID: uuid.New(),
		RoomIDs:   []byte(`["not-a-uuid"]`),
	}

	_, err := raw.toDomain()
	assert.ErrorIs(t, err, ErrDecodeSelection)
}

type captureLogger struct {
	warns int
}

func (l *captureLogger) Warn(format string, v ...interface{}) { l.warns++ }

func TestSelectionsFromRaw_SkipsUndecodableRows(t *testing.T) {
	roomID := uuid.New()
	good := rawSelection{
		ID:            uuid.New(),
		BookingID:     uuid.New(),
		RoomIDs:       []byte(`["` + roomID.String() + `"]`),
		DatesReserved: []byte(`["2026-01-10"]`),
	}
	corrupt := rawSelection{
		ID:        uuid.New(),
		BookingID: uuid.New(),
		RoomIDs:   []byte(`{"corrupt": true}`),
	}

	log := &captureLogger{}
	got := selectionsFromRaw([]rawSelection{corrupt, good}, log)

	// Битая строка не валит выборку целиком
	require.Len(t, got, 1)
	assert.Equal(t, good.ID, got[0].ID)
	assert.Equal(t, []uuid.UUID{roomID}, got[0].RoomIDs)
	assert.Equal(t, 1, log.warns)
}
