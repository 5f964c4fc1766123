package text

import (
	"strings"
)

// SimpleTextReplacer implements TextReplacer using exact, case-sensitive
// substring replacement
type SimpleTextReplacer struct {
	req Request
}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer(req Request) *SimpleTextReplacer {
	return &SimpleTextReplacer{req: req}
}

// Request implements TextReplacer.Request
func (r *SimpleTextReplacer) Request() Request {
	return r.req
}

// ReplaceString implements TextReplacer.ReplaceString
func (r *SimpleTextReplacer) ReplaceString(s string) (string, int) {
	return applyPasses(r.req, s, replaceExact)
}

func replaceExact(req Request, s string) (string, int) {
	count := strings.Count(s, req.Old)
	if count == 0 {
		return s, 0
	}
	return strings.ReplaceAll(s, req.Old, req.New), count
}
