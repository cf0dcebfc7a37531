// Package markup adapts parsed HTML pages to the extractor and renderer.
//
// Pages are parsed with golang.org/x/net/html. Elements are exposed through
// Element, which implements extract.Node, so the cart core never depends on
// a particular page template.
//
// Event delegation: a click anywhere inside a cart control is routed by
// walking up to the nearest element carrying a cart role (see Delegate).
// Nothing is bound per element, so re-rendered markup needs no re-binding.
package markup
