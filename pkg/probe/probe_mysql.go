package probe

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
)

type mySQLProbe struct {
	dsn     string
	addr    string
	timeout time.Duration
}

func NewMySQLProbe(addr, user, password, database string, timeout time.Duration) *mySQLProbe {
	connCfg := mysql.NewConfig()
	connCfg.User = user
	connCfg.Passwd = password
	connCfg.Net = "tcp"
	connCfg.Addr = addr
	connCfg.DBName = database
	connCfg.Timeout = timeout
	connCfg.ReadTimeout = timeout
	connCfg.WriteTimeout = timeout
	connCfg.AllowNativePasswords = true

	return &mySQLProbe{
		dsn:     connCfg.FormatDSN(),
		addr:    addr,
		timeout: timeout,
	}
}

func (m *mySQLProbe) Exec(ctx context.Context, seq int) Outcome {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	db, err := sql.Open("mysql", m.dsn)
	if err != nil {
		return failed(seq, start, err)
	}
	defer db.Close()

	r, err := db.QueryContext(ctx, "SELECT 1")
	if err != nil {
		return failed(seq, start, err)
	}
	_ = r.Close()

	log.WithFields(log.Fields{"kind": "probe", "name": "mysql", "seq": seq, "status": "alive", "host": m.addr}).Debug()
	return connected(seq, start)
}
