//go:build !linux

package hostinfo

// readPlatform has nothing portable to add on this platform; kernel,
// RAM, and uptime stay unknown and render as "N/A".
func readPlatform(_ *Info) {}
