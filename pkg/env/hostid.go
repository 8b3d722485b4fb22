// Package env provides information about the host running the link.
package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// appID scopes the hashed machine ID to this application.
const appID = "patchlink"

// MachineID retrieves the unique ID identifying the machine.
func MachineID() (string, error) {
	return machineid.ProtectedID(appID)
}

// HostID names this host in published topics: a short form of the
// protected machine ID, or the hostname when no machine ID is available.
func HostID() string {
	id, err := MachineID()
	if err == nil && len(id) >= 12 {
		return id[:12]
	}
	glog.Warningf("machine id unavailable: %v", err)
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return "unknown"
}
