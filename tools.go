//go:build tools

package main

// Benchmark comparison: go test -bench . -count 10 ./gol > new.txt; benchstat old.txt new.txt
import _ "golang.org/x/perf/cmd/benchstat"
