package probe

import (
	"context"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoDBProbe struct {
	uri     string
	addr    string
	timeout time.Duration
}

func NewMongoDBProbe(addr, user, password, database string, timeout time.Duration) *mongoDBProbe {
	u := url.URL{
		Scheme: "mongodb",
		Host:   addr,
		Path:   "/" + database,
	}

	if user != "" {
		u.User = url.UserPassword(user, password)
	}

	return &mongoDBProbe{
		uri:     u.String(),
		addr:    addr,
		timeout: timeout,
	}
}

func (m *mongoDBProbe) Exec(ctx context.Context, seq int) Outcome {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(m.uri).
		SetConnectTimeout(m.timeout).
		SetServerSelectionTimeout(m.timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return failed(seq, start, err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return failed(seq, start, err)
	}

	log.WithFields(log.Fields{"kind": "probe", "name": "mongodb", "seq": seq, "status": "alive", "host": m.addr}).Debug()
	return connected(seq, start)
}
