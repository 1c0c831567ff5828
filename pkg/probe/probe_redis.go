package probe

import (
	"context"
	"time"

	"github.com/go-redis/redis"
	log "github.com/sirupsen/logrus"
)

type redisProbe struct {
	addr     string
	password string
	timeout  time.Duration
}

func NewRedisProbe(addr, password string, timeout time.Duration) *redisProbe {
	return &redisProbe{
		addr:     addr,
		password: password,
		timeout:  timeout,
	}
}

func (r *redisProbe) Exec(ctx context.Context, seq int) Outcome {
	start := time.Now()

	client := redis.NewClient(&redis.Options{
		Addr:         r.addr,
		Password:     r.password,
		DialTimeout:  r.timeout,
		ReadTimeout:  r.timeout,
		WriteTimeout: r.timeout,
		MaxRetries:   0,
	}).WithContext(ctx)
	defer client.Close()

	if _, err := client.Ping().Result(); err != nil {
		return failed(seq, start, err)
	}

	log.WithFields(log.Fields{"kind": "probe", "name": "redis", "seq": seq, "status": "alive", "host": r.addr}).Debug()
	return connected(seq, start)
}
