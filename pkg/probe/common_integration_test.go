//go:build integration

package probe

import (
	"context"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	dockerEnv = "/.dockerenv"
	podmanEnv = "/run/.containerenv"

	integrationTimeout = 5 * time.Second
)

// isContainerEnv reports whether the tests run inside a container.
func isContainerEnv() bool {
	if _, err := os.Stat(dockerEnv); err == nil {
		return true
	} else if _, err := os.Stat(podmanEnv); err == nil {
		return true
	}

	return false
}

// svcHost returns either hostAddr or containerAddr
// depending on the current execution environment.
func svcHost(hostAddr, containerAddr string) string {
	if isContainerEnv() {
		return containerAddr
	}

	return hostAddr
}

// svcPort returns either hostPort or containerPort
// depending on the current execution environment.
func svcPort(hostPort, containerPort uint) uint {
	if isContainerEnv() {
		return containerPort
	}

	return hostPort
}

func svcAddr(host string, port uint) string {
	return net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10))
}

func execOnce(p Probe) Outcome {
	return p.Exec(context.Background(), 1)
}
