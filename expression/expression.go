// Package expression feeds scope variables into the embedded expression
// language and consumes its results. Expressions are written as "${...}"
// inside otherwise ordinary JSON string values; the grammar itself is owned
// by the evaluator implementation, not by this package.
package expression

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/duiengine/dui/scope"
)

var reExpr = regexp.MustCompile(`\$\{([^}]*)\}`)

// Evaluator evaluates one expression body against a scope. Evaluation is
// synchronous; errors carry the source text.
type Evaluator interface {
	Evaluate(source string, ctx scope.Context) (interface{}, error)
}

// IsExpression check if the string contains at least one ${...} segment
func IsExpression(s string) bool {
	return reExpr.MatchString(s)
}

// Body strips the ${...} wrapper from a whole-string expression. Returns
// the input unchanged when it is not wrapped.
func Body(s string) string {
	match := reExpr.FindStringSubmatch(s)
	if match != nil && match[0] == s {
		return match[1]
	}
	return s
}

// Eval evaluates a string that may contain expression segments. A string
// that is exactly one "${...}" yields the raw evaluated value, preserving
// its type. Mixed text interpolates each segment and concatenates the
// results as a string. A plain string comes back unchanged.
func Eval(s string, ev Evaluator, ctx scope.Context) (interface{}, error) {
	matches := reExpr.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(s) {
		return ev.Evaluate(s[matches[0][2]:matches[0][3]], ctx)
	}

	var sb strings.Builder
	lastIndex := 0
	for _, match := range matches {
		value, err := ev.Evaluate(s[match[2]:match[3]], ctx)
		if err != nil {
			return nil, err
		}
		sb.WriteString(s[lastIndex:match[0]])
		if value != nil {
			sb.WriteString(fmt.Sprintf("%v", value))
		}
		lastIndex = match[1]
	}
	sb.WriteString(s[lastIndex:])
	return sb.String(), nil
}
