package peephole

import "github.com/ethereum/go-ethereum/metrics"

// Per-family rewrite counters, mirroring the optimizationOpcodeCounter
// metrics.Counter the teacher increments in core/vm/fusion_instruction.go
// for each bytecode-level fusion it applies. Bucketing by family (rather
// than one counter per rule, of which there are hundreds) keeps the metric
// set small while still showing which part of the catalog a workload
// exercises.
var familyCounters = map[string]metrics.Counter{
	"fold":          metrics.NewRegisteredCounter("peephole/rules/fold", nil),
	"identity":      metrics.NewRegisteredCounter("peephole/rules/identity", nil),
	"self":          metrics.NewRegisteredCounter("peephole/rules/self", nil),
	"logical":       metrics.NewRegisteredCounter("peephole/rules/logical", nil),
	"pow2mod":       metrics.NewRegisteredCounter("peephole/rules/pow2mod", nil),
	"addrmask":      metrics.NewRegisteredCounter("peephole/rules/addrmask", nil),
	"boolnegate":    metrics.NewRegisteredCounter("peephole/rules/boolnegate", nil),
	"assoc":         metrics.NewRegisteredCounter("peephole/rules/assoc", nil),
	"addsub":        metrics.NewRegisteredCounter("peephole/rules/addsub", nil),
}

var rewriteSkippedCounter = metrics.NewRegisteredCounter("peephole/rewrites/skipped_not_removable", nil)

func countMatch(family string) {
	if c, ok := familyCounters[family]; ok {
		c.Inc(1)
	}
}
