// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stub

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Blacklist holds the prompt-injection phrases the real backend refuses.
// Matching is case-insensitive substring.
var Blacklist = []string{
	"ignore previous instructions",
	"ignore all instructions",
	"drop table",
	"system prompt",
	"you are a hacked",
}

// ErrMaliciousPrompt is returned by CheckPrompt for blacklisted input.
var ErrMaliciousPrompt = errors.New("Malicious prompt detected: Contains forbidden keywords.")

// CheckPrompt rejects queries containing a blacklisted phrase.
func CheckPrompt(query string) error {
	lower := strings.ToLower(query)
	for _, phrase := range Blacklist {
		if strings.Contains(lower, phrase) {
			return ErrMaliciousPrompt
		}
	}
	return nil
}

var secretPatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)password\s*=\s*\S+`), "password = [REDACTED]"},
	{regexp.MustCompile(`(?i)api_key\s*=\s*\S+`), "api_key = [REDACTED]"},
}

// Sanitize masks credential-looking assignments in an answer.
func Sanitize(answer string) string {
	for _, p := range secretPatterns {
		answer = p.re.ReplaceAllString(answer, p.repl)
	}
	return answer
}
