// Package detect hosts the defect detectors and the orchestrator that runs
// them. Every detector is stateless except for a one-bit observe prefilter;
// the orchestrator streams input once per detector, then lets each read the
// frozen pool, normalizes what comes back, and sorts by kind priority.
//
// The detector list itself plays the role the teacher's decorator registry
// played for devcmd: a flat, explicitly-populated slice of implementations
// discovered once at startup rather than self-registering via init().
package detect

import (
	"sort"

	"github.com/aledsdavies/devcmd/runtime/pool"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

// Detector is the common shape both detector phases implement: an observe
// prefilter fed one rune at a time, and a finalize pass against the frozen
// pool. ShapeDetector and TokenDetector are the same method set under
// different names because the spec splits detectors into two phases by
// mutation rights, not by capability — Go has no distinct "mutable pool"
// type to enforce that split at the type level, so the phase is expressed
// by which slice (ShapeDetectors vs TokenDetectors) a value is placed in.
type Detector interface {
	Name() string
	Observe(c rune, offset int)
	Finalize(p *pool.ShapePool) *sketch.Sketch
}

// ShapeDetector is a Phase 1 detector, run before any TokenDetector and
// permitted (in principle) to prime the pool. Empty by default: nothing in
// the catalog below needs a priming pass.
type ShapeDetector = Detector

// TokenDetector is a Phase 2 detector: read-only against the frozen pool.
type TokenDetector = Detector

// ShapeDetectors returns the Phase 1 detector set. Empty by default.
func ShapeDetectors() []ShapeDetector {
	return nil
}

// TokenDetectors returns the Phase 2 detector set, one instance per
// detector kind, fresh for every scan since each carries an observe flag.
func TokenDetectors() []TokenDetector {
	return []TokenDetector{
		newTrailingComma(),
		newLeadingComma(),
		newDoubleComma(),
		newMissingCommaBetweenItem(),
		newExtraOrMissingColon(),
		newDuplicateKey(),
		newEmptyKeyOrValue(),
		newUnbalancedBracket(),
		newImproperNesting(),
		newExtraOrMissingBracketComplex(),
		newCommentInJSON(),
		newExcessWhitespaceOrNewline(),
		newInvalidCharacter(),
		newUnescapedQuote(),
		newInvalidEscapeSequence(),
		newImproperEncoding(),
		newInvalidNumberFormat(),
		newOverlyLargeNumber(),
		newIncorrectBooleanLiteral(),
		newNullOrNoneLiteral(),
		newMissingQuote(),
		newMixedTypeInArray(),
		newUnexpectedToken(),
		newCircularReference(),
	}
}

// Scan runs the full pipeline against input and returns a deterministic,
// priority-sorted sketch list.
func Scan(input string) []sketch.Sketch {
	p := pool.New(input)

	for _, d := range ShapeDetectors() {
		streamObserve(d, input)
		runFinalize(d, p) // Phase 1 results are discarded per spec.md §4.7 step 2 (no shape detector currently emits)
	}

	// Each detector applies its own dedup/merge policy in Finalize (see
	// finalizeSpans vs finalizeSpansNoMerge) — ImproperNesting deliberately
	// skips the single-char merge that UnbalancedBracket applies, so the
	// orchestrator must not re-merge indiscriminately here.
	var results []sketch.Sketch
	for _, d := range TokenDetectors() {
		streamObserve(d, input)
		s := runFinalize(d, p)
		if s == nil {
			continue
		}
		results = append(results, *s)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Kind.Priority() < results[j].Kind.Priority()
	})
	return results
}

func streamObserve(d Detector, input string) {
	for offset, c := range input {
		d.Observe(c, offset)
	}
}

// runFinalize isolates a detector panic so one broken detector can't abort
// the scan; its result is treated as empty for this input.
func runFinalize(d Detector, p *pool.ShapePool) (result *sketch.Sketch) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
		}
	}()
	return d.Finalize(p)
}
