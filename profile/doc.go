// Package profile starts runtime profiling for the ecnf command through
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//	ecnf --pprof-mode=cpu check large.ecnf
//	go tool pprof -http=: ~/.cache/ecnf/pprof/cpu.pprof
//
// Without the tag, [Modes] is empty and [Config.Start] does nothing.
// With it, the handlers of [net/http/pprof] are also registered on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag that enables profiling.
const Tag = `pprof`
