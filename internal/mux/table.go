package mux

import (
	"errors"
	"net/http"
	"time"

	"holdemtables-server/pkg/holdem"
	"holdemtables-server/pkg/room"
	"holdemtables-server/pkg/table"
)

type postTableResponse struct {
	UUID string      `json:"uuid"`
	Name string      `json:"name"`
	Seat *table.Seat `json:"seat"`
}

// postTable seats the caller at a table with a free seat, opening a new
// table when every table is full. The buy-in is debited from the
// player's account
func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*table.Player)

		// the seated-check and the debit below are not atomic, so only
		// one seat request per player may be in flight
		if !m.beginSeating(player.ID) {
			writeJSONError(w, http.StatusConflict, errors.New("a seat request is already in progress"))
			return
		}
		defer m.endSeating(player.ID)

		// a player sits at one table at a time
		if host := m.hostWithPlayer(player.ID); host != nil {
			var seat *table.Seat
			var name string
			_ = host.Exec(func(t *table.Table) error {
				seat = t.Seat(player.ID)
				name = t.Name
				return nil
			})

			writeJSON(w, http.StatusOK, postTableResponse{
				UUID: host.UUID(),
				Name: name,
				Seat: seat,
			})
			return
		}

		if err := player.AdjustBalance(r.Context(), -m.config.buyIn); err != nil {
			if err == table.ErrInsufficientBalance {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		host := m.floor.FindSeat()

		var seat *table.Seat
		var name string
		err := host.Exec(func(t *table.Table) error {
			s, err := t.AssignSeat(player.ID, player.DisplayName, time.Now())
			if err != nil {
				return err
			}

			seat = s
			name = t.Name
			return nil
		})

		if err != nil {
			// refund the buy-in; the seat was never taken
			if refundErr := player.AdjustBalance(r.Context(), m.config.buyIn); refundErr != nil {
				writeJSONError(w, http.StatusInternalServerError, refundErr)
				return
			}

			writeUserOrInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, postTableResponse{
			UUID: host.UUID(),
			Name: name,
			Seat: seat,
		})
	}
}

func (m *Mux) getTableUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*table.Player)
		host := r.Context().Value(ctxHostKey).(*room.Host)

		state, err := host.State(player.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	})
}

type postActionPayload struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

func (m *Mux) postTableUUIDAction() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*table.Player)
		host := r.Context().Value(ctxHostKey).(*room.Host)

		var payload postActionPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		actionType, err := holdem.ActionTypeFromString(payload.Action)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		action := holdem.Action{Type: actionType, Amount: payload.Amount}
		if err := host.Exec(func(t *table.Table) error {
			return t.Act(player.ID, action, time.Now())
		}); err != nil {
			writeUserOrInternalError(w, err)
			return
		}

		state, err := host.State(player.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	})
}

// deleteTableUUIDSeat removes the caller from the table, folding them
// out of a running hand. Their remaining chips go back to their account
func (m *Mux) deleteTableUUIDSeat() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*table.Player)
		host := r.Context().Value(ctxHostKey).(*room.Host)

		var seat *table.Seat
		if err := host.Exec(func(t *table.Table) error {
			s, err := t.LeaveSeat(player.ID, time.Now())
			if err != nil {
				return err
			}

			seat = s
			return nil
		}); err != nil {
			writeUserOrInternalError(w, err)
			return
		}

		if seat.Balance > 0 {
			if err := player.AdjustBalance(r.Context(), seat.Balance); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "OK",
			"returned": seat.Balance,
		})
	})
}

// hostWithPlayer returns the host of the table the player is seated at, or nil
func (m *Mux) hostWithPlayer(playerID int64) *room.Host {
	for _, host := range m.floor.Hosts() {
		seated := false
		_ = host.Exec(func(t *table.Table) error {
			seated = t.Seat(playerID) != nil
			return nil
		})

		if seated {
			return host
		}
	}

	return nil
}

// writeUserOrInternalError maps player-facing errors to a 400 and
// everything else to a 500
func writeUserOrInternalError(w http.ResponseWriter, err error) {
	var userErr table.UserError
	var gameErr holdem.GameError
	if errors.As(err, &userErr) || errors.As(err, &gameErr) {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	writeJSONError(w, http.StatusInternalServerError, err)
}
