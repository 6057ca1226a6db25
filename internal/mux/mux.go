package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	gmux "github.com/gorilla/mux"

	"holdemtables-server/internal/config"
	"holdemtables-server/internal/jwt"
	"holdemtables-server/pkg/room"
	"holdemtables-server/pkg/table"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxHostKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config    muxConfig
	version   string
	recaptcha recaptcha
	floor     *room.Floor

	// seating tracks players with a seat request in flight so two
	// concurrent requests cannot double-debit the buy-in
	seatingLock sync.Mutex
	seating     map[int64]bool

	// store for testing purposes
	authRouter *gmux.Router
}

type muxConfig struct {
	// playerCreateDelay is the minimum duration between two player create events from a single remote address
	playerCreateDelay time.Duration

	// startingBalance is the account balance a new player signs up with
	startingBalance int

	// buyIn is the account debit for taking a seat
	buyIn int
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	cfg := config.Instance()

	floor := room.NewFloor(table.Options{
		Seats:      cfg.Game.SeatsPerTable,
		SmallBlind: cfg.Game.SmallBlind,
		BigBlind:   cfg.Game.BigBlind,
		BuyIn:      cfg.Game.BuyIn,
		MinPlayers: cfg.Game.MinPlayers,
	}, room.Config{
		TurnTimeout:    cfg.Game.TurnTimeout,
		StartHandDelay: cfg.Game.StartHandDelay,
		TickInterval:   time.Second,
	}, accountBank{})
	floor.Persist = true
	floor.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		floor:   floor,
		config: muxConfig{
			playerCreateDelay: time.Minute,
			startingBalance:   cfg.Game.BuyIn * 10,
			buyIn:             cfg.Game.BuyIn,
		},
		recaptcha: newRecaptcha(),
		seating:   make(map[int64]bool),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
		r.Methods(http.MethodPost).Path("/player/auth").Handler(this.postPlayerAuth())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())

		tr := r.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		tr.Use(this.tableMiddleware)

		tr.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
		tr.Methods(http.MethodPost).Path("/action").Handler(this.postTableUUIDAction())
		tr.Methods(http.MethodDelete).Path("/seat").Handler(this.deleteTableUUIDSeat())
		tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidUserID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		player, err := table.GetPlayerByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, player)
		w.Header().Set("HoldemTables-UserID", strconv.FormatInt(player.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// beginSeating marks a seat request in flight for the player, returning
// false if one is already in flight
func (m *Mux) beginSeating(playerID int64) bool {
	m.seatingLock.Lock()
	defer m.seatingLock.Unlock()

	if m.seating[playerID] {
		return false
	}

	m.seating[playerID] = true
	return true
}

func (m *Mux) endSeating(playerID int64) {
	m.seatingLock.Lock()
	delete(m.seating, playerID)
	m.seatingLock.Unlock()
}

// tableMiddleware requires authMiddleware to execute first
func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]
		host := m.floor.Host(uuid)
		if host == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxHostKey, host)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// accountBank settles chips into player accounts in postgres

type accountBank struct{}

func (accountBank) Credit(ctx context.Context, playerID int64, amount int) error {
	player, err := table.GetPlayerByID(ctx, playerID)
	if err != nil {
		return err
	}

	return player.AdjustBalance(ctx, amount)
}
