package entity

// Hall is a cinema hall with a rectangular seating grid.
type Hall struct {
	Base
	Name       string `db:"name"`
	Rows       int    `db:"rows"`
	SeatsInRow int    `db:"seats_in_row"`
}

func (h Hall) Capacity() int {
	return h.Rows * h.SeatsInRow
}
