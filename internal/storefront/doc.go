// Package storefront wires the cart core to a page.
//
// The Controller is the single entry point for mutation. Events are routed
// from page controls (markup.Delegate) or issued directly, applied to the
// cart.Store and, once persisted, re-rendered into the view and the page.
// Checkout composes the transcript, hands it to a messaging channel and
// records the dispatch in the order log.
//
// Events are serialized by a mutex: one event callback runs at a time.
package storefront
