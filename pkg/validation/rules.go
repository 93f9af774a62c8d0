package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
	"golang.org/x/text/message"
)

// Rule names a validation rule.
type Rule string

const (
	RuleLimit      Rule = "limit"
	RuleRequired   Rule = "required"
	RuleConstraint Rule = "constraint"
)

var zeroWidth = strings.NewReplacer("\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "")

// Content returns the text of n and its descendants, in document order.
func Content(n *domain.Node) string {
	var sb strings.Builder
	n.Walk(func(c *domain.Node) bool {
		sb.WriteString(c.Text)
		return true
	})
	return sb.String()
}

// LimitResult is the outcome of a text limit check.
type LimitResult struct {
	Limit int
	Count int
}

// Exceeded reports whether the text is longer than the limit.
func (r LimitResult) Exceeded() bool { return r.Count > r.Limit }

// Message formats the result for display.
func (r LimitResult) Message(p *message.Printer) string {
	if r.Exceeded() {
		return p.Sprintf("Too long: please remove at least %d letters.", r.Count-r.Limit)
	}
	return p.Sprintf("%d letters remaining.", r.Limit-r.Count)
}

// CheckLimit counts the characters of a text element configured with a limit.
// Zero-width characters and surrounding whitespace are not counted.
func CheckLimit(el *schema.Element, n *domain.Node) (LimitResult, bool) {
	if el.Kind != domain.KindText {
		return LimitResult{}, false
	}
	limit, ok := intConfig(el, "limit")
	if !ok {
		return LimitResult{}, false
	}
	text := strings.TrimSpace(zeroWidth.Replace(Content(n)))
	return LimitResult{Limit: limit, Count: len([]rune(text))}, true
}

// RequiredResult is the outcome of a required field check.
type RequiredResult struct {
	Min     int
	Matches int
}

// TooShort reports whether fewer than Min matches were found, for Min above one.
func (r RequiredResult) TooShort() bool { return r.Min > 1 && r.Matches < r.Min }

// Missing reports whether the pattern did not match at all.
func (r RequiredResult) Missing() bool { return r.Matches == 0 }

// Valid reports whether the field satisfies its requirement.
func (r RequiredResult) Valid() bool { return !r.TooShort() && !r.Missing() }

// Message formats a failed result for display. It is empty for valid results.
func (r RequiredResult) Message(p *message.Printer) string {
	switch {
	case r.TooShort():
		return p.Sprintf("Too short: please add at least %d letters.", r.Min-r.Matches)
	case r.Missing():
		return p.Sprintf("This is a mandatory field")
	}
	return ""
}

// CheckRequired counts the matches of pattern in the content of an element
// configured with min.
func CheckRequired(el *schema.Element, n *domain.Node, pattern *regexp.Regexp) (RequiredResult, bool) {
	if pattern == nil || el.Kind == domain.KindTextConstraint {
		return RequiredResult{}, false
	}
	minimum, ok := intConfig(el, "min")
	if !ok {
		return RequiredResult{}, false
	}
	matches := pattern.FindAllStringIndex(Content(n), -1)
	return RequiredResult{Min: minimum, Matches: len(matches)}, true
}

// ConstraintResult is the outcome of a constrained text check.
// Zero bounds are unset.
type ConstraintResult struct {
	Min      int
	Max      int
	Count    int
	Mismatch bool
	Helper   string
}

// TooShort reports whether the text is shorter than Min.
func (r ConstraintResult) TooShort() bool { return r.Min > 0 && r.Count < r.Min }

// TooLong reports whether the text is longer than Max.
func (r ConstraintResult) TooLong() bool { return r.Max > 0 && r.Count > r.Max }

// Valid reports whether the text satisfies every bound.
func (r ConstraintResult) Valid() bool { return !r.TooShort() && !r.TooLong() && !r.Mismatch }

// Message formats a failed result for display. It is empty for valid results.
func (r ConstraintResult) Message(p *message.Printer) string {
	switch {
	case r.TooShort():
		return p.Sprintf("Too short: please add at least %d letters.", r.Min-r.Count)
	case r.TooLong():
		return p.Sprintf("Too long: please remove at least %d letters.", r.Count-r.Max)
	case r.Mismatch && r.Helper != "":
		return r.Helper
	case r.Mismatch:
		return p.Sprintf("Please match the requested format.")
	}
	return ""
}

// CheckConstraint checks the text of a constrained text element against its
// min and max lengths and against pattern, which must match the whole text.
func CheckConstraint(el *schema.Element, n *domain.Node, pattern *regexp.Regexp) (ConstraintResult, bool) {
	if el.Kind != domain.KindTextConstraint {
		return ConstraintResult{}, false
	}
	text := strings.TrimSpace(zeroWidth.Replace(Content(n)))
	res := ConstraintResult{Count: len([]rune(text)), Helper: el.Config["message-helper"]}
	res.Min, _ = intConfig(el, "min")
	res.Max, _ = intConfig(el, "max")
	res.Mismatch = pattern != nil && !pattern.MatchString(text)
	return res, true
}

func intConfig(el *schema.Element, key string) (int, bool) {
	raw, ok := el.Config[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}
