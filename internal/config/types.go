package config

import "time"

type Protocol string

const (
	ProtocolHTTP       Protocol = "http"
	ProtocolHTTPS      Protocol = "https"
	ProtocolTCPConnect Protocol = "tcp-connect"
	ProtocolWebSocket  Protocol = "ws"
	ProtocolWebSocketS Protocol = "wss"
	ProtocolRedis      Protocol = "redis"
	ProtocolMySQL      Protocol = "mysql"
	ProtocolMongoDB    Protocol = "mongodb"
	ProtocolAmqp       Protocol = "amqp"
	ProtocolSMTP       Protocol = "smtp"

	// ProtocolICMP is kept as a flag value for compatibility only. It never
	// sends ICMP packets and is resolved to ProtocolTCPConnect.
	ProtocolICMP Protocol = "icmp"
)

// Limits are the safety bounds every run is clamped to. A Limits value is
// handed to the resolver and the gate at construction and never modified.
type Limits struct {
	MaxRequests int
	MaxThreads  int
	MinDelay    time.Duration
	Allow       []string
}

// LimitsFile is the on-disk representation of Limits.
type LimitsFile struct {
	MaxRequests *int     `hcl:"maxRequests"`
	MaxThreads  *int     `hcl:"maxThreads"`
	MinDelay    string   `hcl:"minDelay"`
	Allow       []string `hcl:"allow"`
}

type Credentials struct {
	User     string
	Password string
}

type Options struct {
	Credentials

	Target   string
	Port     string
	Protocol Protocol
	Path     string

	Requests int
	Threads  int
	Timeout  time.Duration
	Delay    time.Duration

	Headers     map[string]string
	Database    string
	VirtualHost string
	Insecure    bool

	BypassAllowList bool
	AssumeYes       bool
	Verbose         bool
}

// Clamp records a requested value that was replaced by a safety bound.
type Clamp struct {
	Field     string
	Requested string
	Effective string
}

type Resolved struct {
	Options
	Clamped []Clamp
}
