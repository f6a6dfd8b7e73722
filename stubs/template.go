package stubs

import (
	"strconv"
	"strings"
)

// Expand renders a FuncMapping's DST expression template into source text.
// Templates use the `{self}`/`{args}` placeholders of the original
// emitter's `rust_code.replace("{self}", ...)` and
// `rust_code.format(args=...)` calls: `{self}` is replaced by the receiver
// expression of a method call (ignored for free functions), and `{args}` by
// every call argument joined with ", ". Ordinal placeholders `{0}`, `{1}`,
// … (or `{arg0}`, `{arg1}`, …) are replaced by the argument at that
// position.
func (m FuncMapping) Expand(self string, args []string) string {
	out := strings.ReplaceAll(m.Template, "{self}", self)
	out = strings.ReplaceAll(out, "{args}", strings.Join(args, ", "))
	for i, arg := range args {
		n := strconv.Itoa(i)
		out = strings.ReplaceAll(out, "{"+n+"}", arg)
		out = strings.ReplaceAll(out, "{arg"+n+"}", arg)
	}
	return out
}
