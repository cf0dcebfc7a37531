// Package cart is the authoritative representation of the shopping cart.
//
// A Store holds an ordered sequence of line items, merges repeated adds by
// item identity, and persists the whole sequence under one storage key after
// every mutation. Listeners are notified only after the write succeeded, so
// nothing downstream ever observes a state that is not durable.
//
// # Identity
//
// A catalog-provided identifier is used verbatim. Without one, the identity
// is derived from the normalized name and the canonical price string using
// SHA-256 with domain separation (see DeriveID), so two extraction attempts
// for the same product resolve to the same line item.
//
// # Persistence format
//
// A JSON array of {id, name, price, qty} objects. Decoding never fails the
// caller: absent or malformed documents load as an empty cart, and items
// that cannot be read are dropped.
package cart
