package reservation

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatGridCapacity(t *testing.T) {
	assert.Equal(t, 150, SeatGrid{Rows: 10, SeatsInRow: 15}.Capacity())
	assert.Equal(t, 1, SeatGrid{Rows: 1, SeatsInRow: 1}.Capacity())
}

func TestValidate(t *testing.T) {
	grid := SeatGrid{Rows: 10, SeatsInRow: 15}
	taken := NewPlaces()
	taken.Add(1, 1)

	tests := []struct {
		name    string
		row     int
		seat    int
		wantErr error
		wantMsg string
	}{
		{name: "first seat", row: 2, seat: 1},
		{name: "last seat", row: 10, seat: 15},
		{name: "row zero", row: 0, seat: 1, wantErr: ErrOutOfRange, wantMsg: "Row number must be between 1 and 10"},
		{name: "row past grid", row: 11, seat: 1, wantErr: ErrOutOfRange, wantMsg: "Row number must be between 1 and 10"},
		{name: "seat zero", row: 1, seat: 0, wantErr: ErrOutOfRange, wantMsg: "Seat number must be between 1 and 15"},
		{name: "seat past grid", row: 3, seat: 16, wantErr: ErrOutOfRange, wantMsg: "Seat number must be between 1 and 15"},
		{name: "taken seat", row: 1, seat: 1, wantErr: ErrSeatTaken, wantMsg: "Seat is already taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(grid, taken, tt.row, tt.seat)
			if tt.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMsg, err.Message)
			assert.Equal(t, tt.row, err.Row)
			assert.Equal(t, tt.seat, err.Seat)
		})
	}
}

func TestValidate_NilTaken(t *testing.T) {
	assert.Nil(t, Validate(SeatGrid{Rows: 1, SeatsInRow: 1}, nil, 1, 1))
}

func TestSeatErrorReason(t *testing.T) {
	grid := SeatGrid{Rows: 2, SeatsInRow: 2}
	assert.Equal(t, ReasonOutOfRange, NewOutOfRange(grid, 3, 1).Reason())
	assert.Equal(t, ReasonSeatTaken, NewSeatTaken(1, 1).Reason())

	var seatErr *SeatError
	wrapped := errors.Join(errors.New("context"), NewSeatTaken(1, 2))
	require.ErrorAs(t, wrapped, &seatErr)
	assert.Equal(t, 2, seatErr.Seat)
}

func TestValidateOrder(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	taken := NewPlaces()
	taken.Add(5, 5)

	screenings := map[uuid.UUID]Screening{
		first:  {Grid: SeatGrid{Rows: 10, SeatsInRow: 15}, Taken: taken},
		second: {Grid: SeatGrid{Rows: 3, SeatsInRow: 3}, Taken: NewPlaces()},
	}

	t.Run("all valid", func(t *testing.T) {
		err := ValidateOrder(screenings, []Request{
			{MovieSessionID: first, Row: 1, Seat: 1},
			{MovieSessionID: first, Row: 1, Seat: 2},
			{MovieSessionID: second, Row: 1, Seat: 1},
		})
		assert.Nil(t, err)
	})

	t.Run("same seat on different screenings", func(t *testing.T) {
		err := ValidateOrder(screenings, []Request{
			{MovieSessionID: first, Row: 1, Seat: 1},
			{MovieSessionID: second, Row: 1, Seat: 1},
		})
		assert.Nil(t, err)
	})

	t.Run("reports first failure with index", func(t *testing.T) {
		err := ValidateOrder(screenings, []Request{
			{MovieSessionID: first, Row: 1, Seat: 1},
			{MovieSessionID: second, Row: 4, Seat: 1},
			{MovieSessionID: first, Row: 5, Seat: 5},
		})
		require.NotNil(t, err)
		assert.Equal(t, 1, err.Index)
		assert.Equal(t, second, err.MovieSessionID)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("already sold seat", func(t *testing.T) {
		err := ValidateOrder(screenings, []Request{
			{MovieSessionID: first, Row: 5, Seat: 5},
		})
		require.NotNil(t, err)
		assert.Equal(t, 0, err.Index)
		assert.Equal(t, ReasonSeatTaken, err.Reason())
	})

	t.Run("duplicate inside request", func(t *testing.T) {
		err := ValidateOrder(screenings, []Request{
			{MovieSessionID: second, Row: 2, Seat: 2},
			{MovieSessionID: second, Row: 2, Seat: 2},
		})
		require.NotNil(t, err)
		assert.Equal(t, 1, err.Index)
		assert.ErrorIs(t, err, ErrSeatTaken)
	})
}

func TestTicketsAvailable(t *testing.T) {
	assert.Equal(t, 150, TicketsAvailable(150, 0))
	assert.Equal(t, 149, TicketsAvailable(150, 1))
	assert.Equal(t, 0, TicketsAvailable(150, 150))
	assert.Equal(t, 0, TicketsAvailable(10, 12))
}

// Hall(10, 15): empty screening, one sale, then a repeat and an out-of-grid row.
func TestScenario_TenByFifteen(t *testing.T) {
	grid := SeatGrid{Rows: 10, SeatsInRow: 15}
	taken := NewPlaces()

	require.Equal(t, 150, grid.Capacity())
	assert.Equal(t, 150, TicketsAvailable(grid.Capacity(), len(taken)))

	require.Nil(t, Validate(grid, taken, 1, 1))
	taken.Add(1, 1)
	assert.Equal(t, 149, TicketsAvailable(grid.Capacity(), len(taken)))

	assert.ErrorIs(t, Validate(grid, taken, 1, 1), ErrSeatTaken)
	assert.ErrorIs(t, Validate(grid, taken, 11, 1), ErrOutOfRange)
}
