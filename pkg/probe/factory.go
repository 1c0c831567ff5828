package probe

import (
	"github.com/mittwald/mittload/internal/config"
	"github.com/mittwald/mittload/internal/helper"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// New builds the probe for the protocol selected in opts.
func New(opts config.Options, meta Meta) (Probe, error) {
	protocol := config.NormalizeProtocol(opts.Protocol)
	if opts.Protocol == config.ProtocolICMP {
		log.WithFields(log.Fields{"kind": "probe", "protocol": opts.Protocol}).
			Warn("icmp is not implemented; using a TCP connect probe instead")
	}
	if !protocol.Valid() {
		return nil, errors.Errorf("unsupported protocol %q", opts.Protocol)
	}

	opts.Port = helper.SetDefaultPort(opts.Port, string(protocol))
	addr := opts.Address()

	path, err := NewPathTemplate(opts.Path)
	if err != nil {
		return nil, err
	}

	switch protocol {
	case config.ProtocolHTTP, config.ProtocolHTTPS:
		return NewHttpProbe(HTTPConfig{
			Scheme:      string(protocol),
			Host:        opts.Target,
			Port:        opts.Port,
			Path:        path,
			Headers:     opts.Headers,
			Timeout:     opts.Timeout,
			Insecure:    opts.Insecure,
			Connections: opts.Threads,
			Meta:        meta,
		}), nil
	case config.ProtocolTCPConnect:
		return NewTCPConnectProbe(addr, opts.Timeout), nil
	case config.ProtocolWebSocket, config.ProtocolWebSocketS:
		return NewWebSocketProbe(WebSocketConfig{
			Scheme:   string(protocol),
			Address:  addr,
			Path:     path,
			Headers:  opts.Headers,
			Timeout:  opts.Timeout,
			Insecure: opts.Insecure,
			Meta:     meta,
		}), nil
	case config.ProtocolRedis:
		return NewRedisProbe(addr, opts.Password, opts.Timeout), nil
	case config.ProtocolMySQL:
		return NewMySQLProbe(addr, opts.User, opts.Password, opts.Database, opts.Timeout), nil
	case config.ProtocolMongoDB:
		return NewMongoDBProbe(addr, opts.User, opts.Password, opts.Database, opts.Timeout), nil
	case config.ProtocolAmqp:
		return NewAmqpProbe(addr, opts.User, opts.Password, opts.VirtualHost, opts.Timeout), nil
	case config.ProtocolSMTP:
		return NewSmtpProbe(addr, opts.Timeout), nil
	}

	return nil, errors.Errorf("unsupported protocol %q", opts.Protocol)
}

// Close releases resources held by p, if any.
func Close(p Probe) {
	if c, ok := p.(interface{ Close() }); ok {
		c.Close()
	}
}
