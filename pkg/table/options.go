package table

// Options configures a table
type Options struct {
	// Seats is the number of seats at the table
	Seats int

	SmallBlind int
	BigBlind   int

	// BuyIn is the stack a player sits down with, moved from their account
	BuyIn int

	// MinPlayers is how many active players a hand needs
	MinPlayers int
}

// DefaultOptions returns the default table configuration
func DefaultOptions() Options {
	return Options{
		Seats:      9,
		SmallBlind: 1,
		BigBlind:   2,
		BuyIn:      200,
		MinPlayers: 2,
	}
}
