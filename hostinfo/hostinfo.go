// Package hostinfo answers the static system/hardware questions the
// system-info overlay displays. The overlay depends only on the
// Provider interface, so tests substitute a fake and the real
// implementation stays platform-specific.
package hostinfo

import (
	"os"
	"runtime"
	"time"
)

// Info holds the facts the system-info overlay renders. Fields the
// platform cannot answer are left at their zero value and display as
// "N/A".
type Info struct {
	Hostname  string
	OS        string
	Arch      string
	Kernel    string
	NumCPU    int
	TotalRAM  uint64 // bytes, 0 when unknown
	Uptime    time.Duration
	GoVersion string
	PID       int
}

// Provider supplies a snapshot of host information. Implementations
// must not block on device I/O; everything here is a cheap syscall or
// an in-process lookup.
type Provider interface {
	Info() (Info, error)
}

// System is the live Provider for the current machine.
type System struct{}

// Info implements Provider. Platform-specific facts (kernel release,
// total RAM, uptime) come from the per-OS readers; their failure leaves
// the corresponding fields zero rather than failing the whole query.
func (System) Info() (Info, error) {
	info := Info{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
		PID:       os.Getpid(),
	}
	if host, err := os.Hostname(); err == nil {
		info.Hostname = host
	}
	readPlatform(&info)
	return info, nil
}
