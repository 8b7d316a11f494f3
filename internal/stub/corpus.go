// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stub

import (
	"fmt"
	"strings"
)

// Document is one canned knowledge-base entry.
type Document struct {
	Source   string
	Severity string
	Summary  string
}

// Corpus is the fixed set of documents the stub cites.
var Corpus = []Document{
	{
		Source:   "CVE-2021-44228",
		Severity: "CRITICAL",
		Summary: "Apache Log4j2 JNDI features do not protect against attacker controlled " +
			"LDAP and other JNDI endpoints. An attacker who controls log messages can " +
			"execute arbitrary code loaded from LDAP servers when message lookup substitution is enabled.",
	},
	{
		Source:   "CVE-2022-22965",
		Severity: "CRITICAL",
		Summary: "A Spring MVC or Spring WebFlux application running on JDK 9+ may be " +
			"vulnerable to remote code execution via data binding when deployed as a WAR on Tomcat.",
	},
	{
		Source:   "CVE-2014-0160",
		Severity: "HIGH",
		Summary: "The TLS and DTLS implementations in OpenSSL 1.0.1 before 1.0.1g do not " +
			"properly handle Heartbeat Extension packets, letting remote attackers read " +
			"process memory (Heartbleed).",
	},
}

// defaultSources are cited when the query names no known CVE.
const defaultSources = 2

// Confidence grades an answer by query length: longer questions carry more
// context, so the stub reports more confidence. Values match the casing the
// real backend uses.
func Confidence(query string) string {
	switch n := len(strings.Fields(query)); {
	case n >= 8:
		return "High"
	case n >= 4:
		return "Medium"
	default:
		return "Low"
	}
}

// lookup returns the documents whose CVE id appears in the query, or the
// first defaultSources documents when none does.
func lookup(query string) []Document {
	upper := strings.ToUpper(query)
	var hits []Document
	for _, doc := range Corpus {
		if strings.Contains(upper, doc.Source) {
			hits = append(hits, doc)
		}
	}
	if len(hits) == 0 {
		return Corpus[:defaultSources]
	}
	return hits
}

// Answer builds the canned reply for a query that passed the guard.
func Answer(query string) (answer, confidence string, sources []string) {
	docs := lookup(query)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Development stub.** You asked: _%s_\n\n", strings.TrimSpace(query)))
	for _, doc := range docs {
		sources = append(sources, doc.Source)
		sb.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", doc.Source, doc.Severity, doc.Summary))
	}
	return Sanitize(sb.String()), Confidence(query), sources
}
