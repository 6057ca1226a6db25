package table

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// ErrTableFull happens when a player tries to sit at a table without a free seat
var ErrTableFull = UserError("the table is full")

// ErrInsufficientBalance happens when a player cannot cover the buy-in
var ErrInsufficientBalance = UserError("your balance cannot cover the buy-in")

// ErrNotSeated happens when a player acts on a table they are not seated at
var ErrNotSeated = UserError("you are not seated at this table")

// ErrNotEnoughPlayers happens when a hand cannot start; callers treat it
// as a no-op rather than a failure
var ErrNotEnoughPlayers = UserError("not enough active players to start a hand")

// ErrHandInProgress happens when a hand is started while one is running
var ErrHandInProgress = UserError("a hand is already in progress")

// ErrNoHandInProgress happens when a hand action arrives between hands
var ErrNoHandInProgress = UserError("no hand is in progress")
