package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// DomainItem is the hash domain for derived item identities.
// Version suffix enables future algorithm migration.
const DomainItem = "ambercart/item/v1"

// derivedPrefix marks identities computed by DeriveID.
const derivedPrefix = "p-"

// NormalizeName NFC-normalizes a display name, trims it and collapses inner
// whitespace runs to a single space.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

// DeriveID computes the identity of a product that has no catalog identifier.
// Format: "p-" + hex(SHA256(domain 0x00 name 0x00 price))[:16]
//
// The price is written in its canonical decimal form, so 1500 and "1500.00"
// derive the same identity.
func DeriveID(name string, price decimal.Decimal) string {
	h := sha256.New()
	h.Write([]byte(DomainItem))
	h.Write([]byte{0x00})
	h.Write([]byte(NormalizeName(name)))
	h.Write([]byte{0x00})
	h.Write([]byte(price.String()))
	return derivedPrefix + hex.EncodeToString(h.Sum(nil))[:16]
}

// IsDerivedID reports whether id looks like a DeriveID result.
func IsDerivedID(id string) bool {
	return strings.HasPrefix(id, derivedPrefix) && len(id) == len(derivedPrefix)+16
}
