/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package resolver

import (
	"net/url"
	"regexp"
	"strings"
)

// SchemeIs matches identifiers whose URI scheme equals scheme, ignoring case.
func SchemeIs(scheme string) Predicate {
	return func(id string) bool {
		u, err := url.Parse(id)
		if err != nil {
			return false
		}

		return strings.EqualFold(u.Scheme, scheme)
	}
}

// DIDMethodIs matches DIDs and DID URLs of the given method.
func DIDMethodIs(method string) Predicate {
	prefix := "did:" + method + ":"

	return func(id string) bool {
		return strings.HasPrefix(id, prefix) && len(id) > len(prefix)
	}
}

// HasPrefix matches identifiers starting with prefix.
func HasPrefix(prefix string) Predicate {
	return func(id string) bool {
		return strings.HasPrefix(id, prefix)
	}
}

// Matches matches identifiers accepted by re.
func Matches(re *regexp.Regexp) Predicate {
	return re.MatchString
}

// AnyOf matches identifiers matched by at least one of predicates.
func AnyOf(predicates ...Predicate) Predicate {
	return func(id string) bool {
		for _, p := range predicates {
			if p(id) {
				return true
			}
		}

		return false
	}
}

// SelfCertifying matches did:key identifiers, whose key is derived from the identifier itself.
var SelfCertifying = Matches(regexp.MustCompile(`^did:key:z[1-9A-HJ-NP-Za-km-z]+(#z[1-9A-HJ-NP-Za-km-z]+)?$`))
