package helper

import (
	log "github.com/sirupsen/logrus"
)

var defaultPorts = map[string]string{
	"http":        "80",
	"https":       "443",
	"tcp-connect": "7",
	"ws":          "80",
	"wss":         "443",
	"redis":       "6379",
	"mysql":       "3306",
	"mongodb":     "27017",
	"amqp":        "5672",
	"smtp":        "25",
}

func SetDefaultStringIfEmpty(in, defaultValue, field, kind string) string {
	if in == "" {
		log.WithFields(log.Fields{"kind": kind, "field": field}).Debugf("no value specified, assuming default %q", defaultValue)
		return defaultValue
	}
	return in
}

func SetDefaultPort(port string, protocol string) string {
	if len(port) == 0 || port == "0" {
		defaultPort, ok := defaultPorts[protocol]
		if !ok {
			return port
		}
		log.Infof("No port specified, assuming default port %s for %s", defaultPort, protocol)
		return defaultPort
	}
	return port
}
