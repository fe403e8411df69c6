package secrets

import (
	"regexp"
	"strings"
)

// Category names the kind of secret a rule detects
type Category string

const (
	CategoryPassword     Category = "password"
	CategoryPrivateKey   Category = "private_key"
	CategoryAPIKey       Category = "api_key"
	CategoryToken        Category = "token"
	CategorySecret       Category = "secret"
	CategoryCredential   Category = "credential"
	CategoryAWSAccessKey Category = "aws_access_key"
	CategoryGitHubToken  Category = "github_token"
	CategorySlackToken   Category = "slack_token"
)

// Rule is one row of the detection table. Exactly one of Name and Token is set.
type Rule struct {
	Category Category

	// Name is matched against the left-hand side of an assignment
	Name *regexp.Regexp

	// Token is matched anywhere in the line
	Token *regexp.Regexp
}

// DefaultRules is the ordered detection table.
var DefaultRules = []Rule{
	{Category: CategoryPassword, Name: regexp.MustCompile(`(?i)PASSWORD|PASSWD|PASSPHRASE|(^|[_.-])(PWD|PASS)$`)},
	{Category: CategoryPrivateKey, Name: regexp.MustCompile(`(?i)PRIVATE[_.-]?KEY`)},
	{Category: CategoryAPIKey, Name: regexp.MustCompile(`(?i)API[_.-]?KEY|ACCESS[_.-]?KEY`)},
	{Category: CategoryToken, Name: regexp.MustCompile(`(?i)TOKEN`)},
	{Category: CategorySecret, Name: regexp.MustCompile(`(?i)SECRET`)},
	{Category: CategoryCredential, Name: regexp.MustCompile(`(?i)(^|[_.-])AUTH([_.-]|$)|CREDENTIALS?|SESSION[_.-]?(KEY|ID|TOKEN)`)},
	{Category: CategoryAWSAccessKey, Token: regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`)},
	{Category: CategoryGitHubToken, Token: regexp.MustCompile(`\b(?:gh[pousr]_[A-Za-z0-9]{36,255}|github_pat_[A-Za-z0-9_]{22,255})\b`)},
	{Category: CategorySlackToken, Token: regexp.MustCompile(`\bxox[abposr]-[A-Za-z0-9-]{10,}`)},
}

// value alternatives: double quoted, single quoted or bare up to a comment
const valueExpr = `(?:"([^"\n]*)"|'([^'\n]*)'|([^\s"'#][^\s#]*))`

var (
	// export NAME=value, NAME=value, key = value, key: value
	assignRe = regexp.MustCompile(`^\s*(?:export\s+)?([A-Za-z_][A-Za-z0-9_.-]*)\s*[=:]\s*` + valueExpr)

	// set -gx NAME value
	fishSetRe = regexp.MustCompile(`^\s*set\s+(?:-[A-Za-z]+\s+)*([A-Za-z_][A-Za-z0-9_]*)\s+` + valueExpr)
)

// assignment is a parsed NAME=value line with the value's byte span
type assignment struct {
	name       string
	start, end int
}

func (a assignment) value(line string) string {
	return line[a.start:a.end]
}

func parseAssignment(line string) (assignment, bool) {
	for _, re := range []*regexp.Regexp{fishSetRe, assignRe} {
		m := re.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		// groups 2..4 are the value alternatives
		for g := 2; g <= 4; g++ {
			if m[2*g] >= 0 {
				return assignment{name: line[m[2]:m[3]], start: m[2*g], end: m[2*g+1]}, true
			}
		}
	}
	return assignment{}, false
}

// isReference reports values that point at secrets instead of holding them:
// shell expansions and slinky placeholders.
func isReference(value string) bool {
	return value == "" || strings.HasPrefix(value, "$") || strings.HasPrefix(value, tokenPrefix)
}
