//go:build (js && wasm) || wasip1

package evaluator

// init sets WebAssembly-specific defaults for all Evaluators created in this
// process.
//
// A wasm module runs in a linear memory that is far smaller than a native
// heap and cannot shrink once grown, so string repetition is capped lower.
// WithMaxStringLength still overrides the default.
func init() {
	defaultMaxStringLength = 16 << 20
}
