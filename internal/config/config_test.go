package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"holdemtables-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("HT_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("HT_JWT_PRIVATE_KEY", "private2.key")
	defer clear2()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal("postgres://testhost:5432/postgres?sslmode=disable", cfg.PGDSN)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal(4, cfg.Game.BigBlind)
	// defaults still apply for keys the file omits
	a.Equal(1, cfg.Game.SmallBlind)

	// ensure that it's only loaded once
	_ = os.Setenv("HT_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestLoad_missingFile(t *testing.T) {
	clear := util.SetEnv("HT_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal(DefaultConfig().PGDSN, cfg.PGDSN)
	a.Equal(9, cfg.Game.SeatsPerTable)
}
