//go:build linux

package hostinfo

import (
	"time"

	"golang.org/x/sys/unix"
)

// readPlatform fills the Linux-only fields. Each syscall failure is
// tolerated independently; the field just stays zero.
func readPlatform(info *Info) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		info.Kernel = unix.ByteSliceToString(uts.Release[:])
	}

	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err == nil {
		info.TotalRAM = si.Totalram * uint64(si.Unit)
		info.Uptime = time.Duration(si.Uptime) * time.Second
	}
}
