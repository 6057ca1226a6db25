package table

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/synacor/argon2id"

	"holdemtables-server/pkg/db"
)

const playerColumns = `
players.id,
players.email,
players.display_name,
players.is_site_admin,
players.balance,
players.password_hash,
players.created,
players.updated`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrInvalidEmailOrPassword is an error for an invalid email or password
var ErrInvalidEmailOrPassword = errors.New("invalid email address and/or password")

// ErrDuplicateKey happens if a user tries to create a player with a taken email
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// Player is a record in the `players` table. Balance is the chips in the
// player's account, not what they have on a table
type Player struct {
	ID           int64  `json:"id"`
	Email        string `json:"-"`
	DisplayName  string `json:"displayName"`
	IsSiteAdmin  bool   `json:"isSiteAdmin"`
	Balance      int    `json:"balance"`
	passwordHash string
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var player Player
	if err := row.Scan(&player.ID, &player.Email, &player.DisplayName, &player.IsSiteAdmin, &player.Balance, &player.passwordHash, &player.Created, &player.Updated); err != nil {
		return nil, err
	}

	return &player, nil
}

// CreatePlayer creates a new player account with the starting balance
func CreatePlayer(ctx context.Context, email, displayName, password, remoteAddr string, balance int) (*Player, error) {
	hash, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO players (email, display_name, password_hash, balance, remote_addr)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + playerColumns

	row := db.Instance().QueryRowContext(ctx, query, email, displayName, hash, balance, remoteAddr)
	player, err := getPlayerByRow(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return player, nil
}

// GetPlayerByID returns player based on the ID
func GetPlayerByID(ctx context.Context, id int64) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getPlayerByRow(row)
}

// GetPlayerByEmail will return a user by the email address
func GetPlayerByEmail(ctx context.Context, email string) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE lower(email) = lower($1)`

	row := db.Instance().QueryRowContext(ctx, query, email)
	return getPlayerByRow(row)
}

// GetPlayerByEmailAndPassword will return a user if the email and password are valid
func GetPlayerByEmailAndPassword(ctx context.Context, email, password string) (*Player, error) {
	player, err := GetPlayerByEmail(ctx, email)
	if err != nil {
		if err == sql.ErrNoRows {
			// prevent timing attacks
			_ = argon2id.Compare("", "")
			return nil, ErrInvalidEmailOrPassword
		}

		return nil, err
	}

	if err := argon2id.Compare(player.passwordHash, password); err != nil {
		return nil, ErrInvalidEmailOrPassword
	}

	return player, nil
}

// Save will persist any changes made to the player to the database
func (p *Player) Save(ctx context.Context) error {
	const query = `
UPDATE players
SET email = $1,
    display_name = $2,
    is_site_admin = $3,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $4`

	_, err := db.Instance().ExecContext(ctx, query, p.Email, p.DisplayName, p.IsSiteAdmin, p.ID)
	return err
}

// AdjustBalance atomically moves chips into (positive) or out of
// (negative) the player's account. The balance can never go below zero
func (p *Player) AdjustBalance(ctx context.Context, amount int) error {
	const query = `
UPDATE players
SET balance = balance + $1,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2
  AND balance + $1 >= 0
RETURNING balance`

	row := db.Instance().QueryRowContext(ctx, query, amount, p.ID)
	if err := row.Scan(&p.Balance); err != nil {
		if err == sql.ErrNoRows {
			return ErrInsufficientBalance
		}

		return err
	}

	return nil
}

// SetIsSiteAdmin sets the site-admin flag on the account
func (p *Player) SetIsSiteAdmin(ctx context.Context, isSiteAdmin bool) error {
	p.IsSiteAdmin = isSiteAdmin
	return p.Save(ctx)
}

// LastPlayerCreatedAt returns the last time a player was created by the remote address
// If a player hasn't been created yet, this will return a nil error and a time.Time{} object (i.e., zero)
func LastPlayerCreatedAt(ctx context.Context, remoteAddr string) (time.Time, error) {
	const query = `
SELECT MAX(created)
FROM players
WHERE remote_addr = $1`

	var created *time.Time
	row := db.Instance().QueryRowContext(ctx, query, remoteAddr)
	if err := row.Scan(&created); err != nil {
		return time.Time{}, err
	}

	if created == nil {
		return time.Time{}, nil
	}

	return *created, nil
}
