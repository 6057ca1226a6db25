package room

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"holdemtables-server/pkg/table"
)

// Floor is responsible for dispatching players to tables. It owns one
// host per table
type Floor struct {
	opts table.Options
	cfg  Config
	bank Bank

	// Persist mirrors the table registry to postgres. Set it before the
	// first table is created
	Persist bool

	lock  sync.RWMutex
	hosts map[string]*Host

	connect    chan *Client
	disconnect chan *Client
	close      chan bool
}

// NewFloor returns a new dispatch object
func NewFloor(opts table.Options, cfg Config, bank Bank) *Floor {
	return &Floor{
		opts:       opts,
		cfg:        cfg,
		bank:       bank,
		hosts:      make(map[string]*Host),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		close:      make(chan bool),
	}
}

// StartShift starts the floor run loop
func (f *Floor) StartShift() {
	go f.runLoop()
}

// EndShift shuts down the floor and every host
func (f *Floor) EndShift() {
	f.lock.Lock()
	for uuid, host := range f.hosts {
		host.EndShift()
		delete(f.hosts, uuid)
	}
	f.lock.Unlock()

	close(f.close)
}

func (f *Floor) runLoop() {
	for {
		select {
		case client := <-f.connect:
			logrus.WithField("player", client.String()).Debug("client connected")
			host := f.Host(client.tableUUID)
			if host == nil {
				logrus.WithField("uuid", client.tableUUID).Error("table not found")
				client.Close <- "table not found"
				continue
			}

			host.AddClient(client)
		case client := <-f.disconnect:
			logrus.WithField("player", client.String()).Debug("client disconnected")
			host := f.Host(client.tableUUID)
			if host == nil {
				continue
			}

			if host.RemoveClient(client) {
				f.retireIfEmpty(host)
			}
		case <-f.close:
			return
		}
	}
}

// CreateTable opens a new table and starts its host
func (f *Floor) CreateTable() *Host {
	tbl := table.NewTable(f.opts)
	host := newHost(f, tbl, f.cfg, f.bank)
	host.persist = f.Persist

	if f.Persist {
		if err := tbl.Insert(context.Background()); err != nil {
			logrus.WithError(err).WithField("uuid", tbl.UUID).Error("could not record table")
		}
	}

	f.lock.Lock()
	f.hosts[tbl.UUID] = host
	f.lock.Unlock()

	host.StartShift()

	logrus.WithFields(logrus.Fields{
		"uuid": tbl.UUID,
		"name": tbl.Name,
	}).Info("table opened")

	return host
}

// Host returns the host for the table UUID, or nil
func (f *Floor) Host(uuid string) *Host {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.hosts[uuid]
}

// Hosts returns every open table's host
func (f *Floor) Hosts() []*Host {
	f.lock.RLock()
	defer f.lock.RUnlock()

	hosts := make([]*Host, 0, len(f.hosts))
	for _, host := range f.hosts {
		hosts = append(hosts, host)
	}

	return hosts
}

// FindSeat returns a host whose table has a free seat, opening a new
// table when every table is full
func (f *Floor) FindSeat() *Host {
	for _, host := range f.Hosts() {
		free := false
		_ = host.Exec(func(t *table.Table) error {
			free = t.HasFreeSeat()
			return nil
		})

		if free {
			return host
		}
	}

	return f.CreateTable()
}

// ClientConnected is called when a client connects to the server
func (f *Floor) ClientConnected(client *Client) {
	f.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (f *Floor) ClientDisconnected(client *Client) {
	f.disconnect <- client
}

// retireIfEmpty closes a table once its last client has disconnected and
// nobody is seated
func (f *Floor) retireIfEmpty(host *Host) {
	empty := false
	_ = host.Exec(func(t *table.Table) error {
		empty = t.ActivePlayerCount() == 0
		return nil
	})

	if !empty {
		return
	}

	f.lock.Lock()
	delete(f.hosts, host.UUID())
	f.lock.Unlock()

	host.EndShift()

	// the run loop has stopped, so the table can be touched directly
	if f.Persist {
		if err := host.table.Delete(context.Background()); err != nil {
			logrus.WithError(err).WithField("uuid", host.UUID()).Error("could not delete table record")
		}
	}

	logrus.WithField("uuid", host.UUID()).Info("table retired")
}
