// Package eventid decodes the host calendar's opaque event identifiers.
//
// The host encodes an event id as base64 of "<baseId>[_<instanceDate>] <ownerSuffix>",
// where instanceDate is an ISO-basic UTC timestamp present only on instances of a
// recurring series and ownerSuffix is the owning calendar's address. The format is
// undocumented vendor behavior; the tests in this package pin every shape we have
// observed, and any format change is handled here, never in the resolver.
package eventid

import (
	"encoding/base64"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind classifies a decoded identity.
type Kind string

const (
	// KindSingle is a plain, non-recurring event id.
	KindSingle Kind = "single"
	// KindRecurring is an instance of a recurring series.
	KindRecurring Kind = "recurring"
	// KindInvalid marks input that did not decode; the raw id is kept and
	// used opaquely so overrides still work for such events.
	KindInvalid Kind = "invalid"
)

// Identity is the decoded form of a raw event id. It is derived purely from
// the raw id, recomputed on demand, and never persisted.
type Identity struct {
	RawID        string
	BaseID       string
	InstanceDate string // "20240315T140000Z" style, empty for non-instances
	OwnerSuffix  string
	Kind         Kind
}

var (
	instanceDateRe = regexp.MustCompile(`_(\d{8}T\d{6}Z)$`)
	ownerSuffixRe  = regexp.MustCompile(`\s+([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+)$`)
)

// Decode parses a raw host event id. It never fails outward: malformed input
// yields a degenerate identity with Kind KindInvalid and BaseID equal to the
// raw id, which keeps single-event overrides working for ids we cannot read.
func Decode(rawID string) Identity {
	degenerate := Identity{
		RawID:  rawID,
		BaseID: rawID,
		Kind:   KindInvalid,
	}
	if rawID == "" {
		return degenerate
	}

	decoded, ok := decodeBase64(rawID)
	if !ok || !printable(decoded) {
		return degenerate
	}

	ident := Identity{RawID: rawID, Kind: KindSingle}

	rest := decoded
	if m := ownerSuffixRe.FindStringSubmatchIndex(rest); m != nil {
		ident.OwnerSuffix = rest[m[2]:m[3]]
		rest = rest[:m[0]]
	}

	if m := instanceDateRe.FindStringSubmatch(rest); m != nil {
		ident.InstanceDate = m[1]
		ident.Kind = KindRecurring
		rest = strings.TrimSuffix(rest, "_"+m[1])
	}

	if rest == "" {
		return degenerate
	}
	ident.BaseID = rest
	return ident
}

// Encode builds the canonical series key for a base id: the same encoding
// the host uses, with the instance date stripped. Records written under this
// key apply to every instance of the series.
func Encode(baseID, ownerSuffix string) string {
	plain := baseID
	if ownerSuffix != "" {
		plain += " " + ownerSuffix
	}
	return base64.RawStdEncoding.EncodeToString([]byte(plain))
}

// Valid reports whether the identity decoded cleanly.
func (id Identity) Valid() bool { return id.Kind != KindInvalid }

// IsRecurring reports whether the id names an instance of a recurring series.
func (id Identity) IsRecurring() bool { return id.Kind == KindRecurring }

// CanonicalKey returns the series key for this identity. For invalid
// identities it returns the raw id unchanged.
func (id Identity) CanonicalKey() string {
	if !id.Valid() {
		return id.RawID
	}
	return Encode(id.BaseID, id.OwnerSuffix)
}

// SameSeries reports whether two identities belong to the same recurring
// series. Degenerate identities never match anything, including themselves.
func SameSeries(a, b Identity) bool {
	return a.Valid() && b.Valid() && a.BaseID == b.BaseID
}

// SameInstance reports whether two identities name the exact same rendered
// event.
func SameInstance(a, b Identity) bool {
	return a.RawID == b.RawID
}

// decodeBase64 tries the padded and raw variants the host has been seen to
// emit. URL-safe alphabets show up on some UI surfaces.
func decodeBase64(s string) (string, bool) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return string(b), true
		}
	}
	return "", false
}

// printable rejects decodes that "succeed" but produce binary garbage, which
// happens when a non-base64 id coincidentally falls inside the alphabet.
func printable(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
