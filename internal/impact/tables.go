// Chanakya - News Relevance and Deduplication Engine
// Copyright 2026 punieth
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/punieth/sos-pm-chanakya

package impact

import "strings"

// sourceScores is the static trust table keyed by registrable domain.
// Unknown domains fall back to defaultSourceScore.
var sourceScores = map[string]float64{
	// regulators and government
	"rbi.org.in":   0.95,
	"sebi.gov.in":  0.95,
	"trai.gov.in":  0.90,
	"meity.gov.in": 0.90,
	"pib.gov.in":   0.85,
	"npci.org.in":  0.85,

	// wire services and international business press
	"reuters.com":   0.90,
	"bloomberg.com": 0.85,
	"ft.com":        0.80,
	"wsj.com":       0.80,

	// national business press
	"economictimes.indiatimes.com": 0.70,
	"livemint.com":                 0.70,
	"business-standard.com":        0.70,
	"thehindu.com":                 0.70,
	"moneycontrol.com":             0.65,
	"financialexpress.com":         0.60,

	// tech and startup trade press
	"techcrunch.com": 0.65,
	"medianama.com":  0.60,
	"inc42.com":      0.55,
	"entrackr.com":   0.55,
	"yourstory.com":  0.50,
}

const (
	defaultSourceScore = 0.30

	// domains at or above this score count as trusted for the
	// surface-reach and authority density calculations.
	trustedFloor = 0.50
)

// regulatorDomains are the subset of sources whose publications carry
// direct regulatory weight. Matching any of these is the strongest
// region-tie feature.
var regulatorDomains = map[string]bool{
	"rbi.org.in":   true,
	"sebi.gov.in":  true,
	"trai.gov.in":  true,
	"meity.gov.in": true,
	"pib.gov.in":   true,
	"npci.org.in":  true,
}

// geoDomains are non-regulator domains that publish primarily for the
// target market.
var geoDomains = map[string]bool{
	"economictimes.indiatimes.com": true,
	"livemint.com":                 true,
	"business-standard.com":        true,
	"thehindu.com":                 true,
	"moneycontrol.com":             true,
	"financialexpress.com":         true,
	"medianama.com":                true,
	"inc42.com":                    true,
	"entrackr.com":                 true,
	"yourstory.com":                true,
}

// regionKeywords feed the keyword prior of the region-tie model. Stems,
// matched against tokenized title and description.
var regionKeywords = map[string]bool{
	"india":     true,
	"indian":    true,
	"delhi":     true,
	"mumbai":    true,
	"bengaluru": true,
	"bangalore": true,
	"hyderabad": true,
	"chennai":   true,
	"rupee":     true,
	"crore":     true,
	"lakh":      true,
	"rbi":       true,
	"sebi":      true,
	"trai":      true,
	"upi":       true,
	"npci":      true,
	"gst":       true,
	"aadhaar":   true,
}

// regionEntityPrefixes match against extracted entity ids. Prefix match
// so that "paytm-payments-bank" still hits "paytm".
var regionEntityPrefixes = []string{
	"paytm", "phonepe", "flipkart", "reliance", "jio", "infosys",
	"tata", "adani", "hdfc", "icici", "sbi", "zomato", "swiggy",
	"byju", "ola", "razorpay", "upi", "npci", "airtel", "wipro",
	"meesho", "zerodha", "cred",
}

// commerceTerms drive the commerce-tie component for items whose
// archetype is not already COMMERCE.
var commerceTerms = map[string]bool{
	"upi":        true,
	"wallet":     true,
	"checkout":   true,
	"payment":    true,
	"merchant":   true,
	"cart":       true,
	"pricing":    true,
	"gst":        true,
	"commerce":   true,
	"shopping":   true,
	"refund":     true,
	"invoice":    true,
	"settlement": true,
}

// SourceScore returns the trust score for a domain, falling back to the
// default for unknown domains. Matching ignores a leading "www." label.
func SourceScore(domain string) float64 {
	d := normalizeDomain(domain)
	if s, ok := sourceScores[d]; ok {
		return s
	}
	return defaultSourceScore
}

// IsRegulatorDomain reports whether the domain is a regulator source.
func IsRegulatorDomain(domain string) bool {
	return regulatorDomains[normalizeDomain(domain)]
}

// IsGeoDomain reports whether the domain is a target-market publication,
// either by allowlist or by the market's country TLD.
func IsGeoDomain(domain string) bool {
	d := normalizeDomain(domain)
	if geoDomains[d] || regulatorDomains[d] {
		return true
	}
	return strings.HasSuffix(d, ".in")
}

// IsTrustedDomain reports whether the domain clears the trusted floor.
func IsTrustedDomain(domain string) bool {
	return SourceScore(domain) >= trustedFloor
}

func normalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "www.")
	return d
}
