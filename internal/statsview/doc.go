// Package statsview serves live Go runtime statistics while a program
// runs. It is only functional when built with the statsview tag:
//
//	go build -tags statsview ./cmd/cpurunner
//
// Charts are then served at
//
//	localhost:12600/debug/statsview
//
// and the standard pprof endpoints at
//
//	localhost:12600/debug/pprof/
package statsview
