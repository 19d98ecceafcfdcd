// Package expreval is an embeddable, single-pass evaluator for a subset of
// the JavaScript expression grammar.
//
// The evaluator accepts a textual expression and returns a dynamically-typed
// [Value]: a number (float, int64, or uint64 variant), string, boolean,
// null, undefined, function reference, opaque host object, array, raw JSON
// fragment, or error. There are no statements, no assignment, and no
// variable declarations. Reserved statement-level keywords such as "new" and
// "typeof" are recognized and reported as unsupported.
//
// Identifiers are resolved through an optional host callback on [Env].
// The callback receives a receiver value (the global marker for top-level
// lookups, or the current value for chained member access) and the
// identifier, and may return any Value, including functions and raw JSON.
// JSON values are walked lazily: member and index access re-parses the
// underlying bytes, so large documents cost only what the expression
// touches.
//
// Evaluation never parses to a tree. Each precedence level scans its byte
// range, splits on the operators of that level, and recursively evaluates
// the sub-ranges, skipping balanced groups and quoted strings. Results
// compose through JavaScript-compatible coercion rules.
//
// The simplest entry point evaluates with throwaway storage:
//
//	v := expreval.Eval(`1 + 2 * 3`, nil)
//	fmt.Println(v.String()) // 7
//
// A [Session] reuses a small bump-allocated region across evaluations and
// reports memory statistics; values returned by a session remain valid
// until [Session.Cleanup]. Sessions are not safe for concurrent use, but
// independent sessions share no state and may run on any number of
// goroutines.
//
// Errors are ordinary values: every operator propagates an error operand
// unchanged, and [Value.IsError] and [Value.IsOOM] discriminate the result.
// The engine never panics on malformed input.
package expreval
