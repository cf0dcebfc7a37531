// Package order composes the checkout transcript and hands it to a
// messaging channel.
//
// Composition is deterministic: the same cart and customer fields always
// produce the same text. The composer performs no I/O; Link only builds a
// deep-link URL and a Launcher opens it.
package order
