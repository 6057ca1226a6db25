package room

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"holdemtables-server/internal/rng"
	"holdemtables-server/pkg/holdem"
	"holdemtables-server/pkg/table"
)

// Bank settles chips back into player accounts when a seat is cleared
type Bank interface {
	Credit(ctx context.Context, playerID int64, amount int) error
}

// Config controls hand scheduling at a table
type Config struct {
	// TurnTimeout is how long a player may sit on their turn before they
	// are folded automatically
	TurnTimeout time.Duration

	// StartHandDelay is the pause after a hand completes before payouts
	// are applied and the next hand may begin
	StartHandDelay time.Duration

	// TickInterval is how often the host checks its schedule
	TickInterval time.Duration
}

// DefaultConfig returns the standard table timings
func DefaultConfig() Config {
	return Config{
		TurnTimeout:    time.Second * 30,
		StartHandDelay: time.Second * 5,
		TickInterval:   time.Second,
	}
}

type seedSource interface {
	Int63() int64
}

// Host runs a single table. All access to the table goes through the
// host's run loop, so the table itself needs no locking
type Host struct {
	floor   *Floor
	table   *table.Table
	cfg     Config
	bank    Bank
	seeds   seedSource
	persist bool

	clients map[*Client]bool
	lock    sync.RWMutex

	exec          chan execRequest
	execInRunLoop chan func()
	close         chan bool

	// finishAt is when a completed hand's payouts are applied; zero
	// while no hand is complete
	finishAt time.Time
}

type execRequest struct {
	fn    func(t *table.Table) error
	reply chan error
}

func newHost(floor *Floor, tbl *table.Table, cfg Config, bank Bank) *Host {
	return &Host{
		floor:         floor,
		table:         tbl,
		cfg:           cfg,
		bank:          bank,
		seeds:         rng.Crypto{},
		clients:       make(map[*Client]bool),
		exec:          make(chan execRequest, 256),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// UUID returns the table's UUID
func (h *Host) UUID() string {
	return h.table.UUID
}

// Clients will return a slice of connected (at the time) clients
func (h *Host) Clients() []*Client {
	h.lock.RLock()
	defer h.lock.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (h *Host) StartShift() {
	go h.runLoop()
}

// EndShift is called when the host is no longer needed
func (h *Host) EndShift() {
	close(h.close)
}

func (h *Host) runLoop() {
	log := logrus.WithFields(logrus.Fields{
		"uuid": h.table.UUID,
		"name": h.table.Name,
	})

	log.Debug("creating host run loop")

	ticker := time.NewTicker(h.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			h.tick(now)
		case req := <-h.exec:
			req.reply <- req.fn(h.table)
			h.broadcastState()
		case fn := <-h.execInRunLoop:
			fn()
		case <-h.close:
			log.Debug("terminating host run loop")
			return
		}
	}
}

// Exec runs fn against the table inside the run loop and waits for it
// to finish. A state broadcast follows every call
func (h *Host) Exec(fn func(t *table.Table) error) error {
	req := execRequest{fn: fn, reply: make(chan error, 1)}
	h.exec <- req
	return <-req.reply
}

// State returns the table as seen by the player
func (h *Host) State(playerID int64) (*TableState, error) {
	var state *TableState
	err := h.Exec(func(t *table.Table) error {
		state = tableState(t, playerID, h.cfg.TurnTimeout)
		return nil
	})

	return state, err
}

// tick advances the table schedule. Must only be called from the run loop
func (h *Host) tick(now time.Time) {
	switch h.table.Status() {
	case table.StatusPlaying:
		hand := h.table.Hand()
		if hand == nil || hand.IsOver() {
			return
		}

		if hand.TurnExpired(now, h.cfg.TurnTimeout) {
			turnID := hand.CurrentTurnID()
			if err := h.table.Act(turnID, holdem.Fold, now); err != nil {
				logrus.WithError(err).WithField("player", turnID).Error("could not fold expired turn")
				return
			}

			logrus.WithFields(logrus.Fields{
				"uuid":   h.table.UUID,
				"player": turnID,
			}).Debug("folded expired turn")
			h.broadcastState()
		}
	case table.StatusHandComplete:
		if h.finishAt.IsZero() {
			h.finishAt = now.Add(h.cfg.StartHandDelay)
			return
		}

		if now.Before(h.finishAt) {
			return
		}

		h.finishHand()
	case table.StatusWaiting:
		if h.table.ActivePlayerCount() >= h.table.Options().MinPlayers {
			h.startHand(now)
		}
	}
}

// finishHand applies payouts, settles busted seats back to the bank, and
// lets the next hand begin. Must only be called from the run loop
func (h *Host) finishHand() {
	winners, busted, err := h.table.FinishHand()
	if err != nil {
		logrus.WithError(err).WithField("uuid", h.table.UUID).Error("could not finish hand")
		return
	}

	h.finishAt = time.Time{}

	for _, seat := range busted {
		if h.bank != nil && seat.Balance > 0 {
			if err := h.bank.Credit(context.Background(), seat.PlayerID, seat.Balance); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"player": seat.PlayerID,
					"amount": seat.Balance,
				}).Error("could not credit busted seat")
			}
		}
	}

	h.broadcast(&Response{
		Key:  "handFinished",
		Data: winners,
	})
	h.saveStatus()
	h.broadcastState()
}

// saveStatus mirrors the table's lifecycle state to the registry.
// Must only be called from the run loop
func (h *Host) saveStatus() {
	if !h.persist {
		return
	}

	if err := h.table.SaveStatus(context.Background()); err != nil {
		logrus.WithError(err).WithField("uuid", h.table.UUID).Error("could not save table status")
	}
}

// startHand deals a new hand with a crypto-random shuffle seed.
// Must only be called from the run loop
func (h *Host) startHand(now time.Time) {
	if err := h.table.StartHand(h.seeds.Int63(), now); err != nil {
		if err != table.ErrNotEnoughPlayers {
			logrus.WithError(err).WithField("uuid", h.table.UUID).Error("could not start hand")
		}

		return
	}

	h.saveStatus()
	h.broadcastState()
}

// AddClient adds a client
// This method must return quickly
func (h *Host) AddClient(client *Client) {
	h.lock.Lock()
	client.host = h
	h.clients[client] = true
	h.lock.Unlock()

	h.execInRunLoop <- func() {
		client.Send(&Response{
			Key:  "tableState",
			Data: tableState(h.table, client.player.ID, h.cfg.TurnTimeout),
		})
	}
}

// RemoveClient removes a client
// This method must return quickly
func (h *Host) RemoveClient(client *Client) (lastClient bool) {
	h.lock.Lock()
	delete(h.clients, client)
	nClients := len(h.clients)
	h.lock.Unlock()

	return nClients == 0
}

// ReceivedMessage is called when a client sends a message to the server
func (h *Host) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "state":
		h.execInRunLoop <- func() {
			c.Send(&Response{
				Key:     "tableState",
				Data:    tableState(h.table, c.player.ID, h.cfg.TurnTimeout),
				Context: msg.Context,
			})
		}
	case "act":
		actionType, err := holdem.ActionTypeFromString(msg.Name)
		if err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		action := holdem.Action{Type: actionType, Amount: msg.Amount}
		h.execInRunLoop <- func() {
			if err := h.table.Act(c.player.ID, action, time.Now()); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			h.broadcastState()
		}
	default:
		logrus.WithField("msg", msg).Warn("unknown message")
	}
}

// broadcastState sends each connected client their view of the table.
// Must only be called from the run loop
func (h *Host) broadcastState() {
	for _, client := range h.Clients() {
		client.Send(&Response{
			Key:  "tableState",
			Data: tableState(h.table, client.player.ID, h.cfg.TurnTimeout),
		})
	}
}

// broadcast sends the same message to every connected client.
// Must only be called from the run loop
func (h *Host) broadcast(msg *Response) {
	for _, client := range h.Clients() {
		client.Send(msg)
	}
}
