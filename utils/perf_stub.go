//go:build !linux
// +build !linux

package utils

import "fmt"

func CountInstructions(f func()) (instructions uint64, err error) {
	f()
	err = fmt.Errorf("hardware counters require linux perf events")
	return
}

func CountCycles(f func()) (cycles uint64, err error) {
	f()
	err = fmt.Errorf("hardware counters require linux perf events")
	return
}
