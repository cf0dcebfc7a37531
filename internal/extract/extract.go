// Package extract recovers product descriptors from storefront markup.
//
// Each field (name, identifier, price) is resolved independently, first hit
// wins:
//
//  1. attributes on the trigger element
//  2. attributes on the nearest product container
//  3. text of a label element inside the container (or the trigger's parent
//     when there is no container), with known prefixes stripped
//
// A missing identifier is tolerated; cart.Descriptor.Identity derives one.
package extract

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/money"
)

var (
	// ErrMissingName is returned when no source yields a product name.
	ErrMissingName = errors.New("product name not found")

	// ErrMissingPrice is returned when no source yields a price.
	ErrMissingPrice = errors.New("product price not found")
)

// Failure is an extraction error that carries a notice for the shopper.
type Failure struct {
	Notice string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("extract: %v", f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Extractor resolves descriptors using a vocabulary.
type Extractor struct {
	vocab Vocabulary
}

// New creates an extractor.
func New(vocab Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract builds a descriptor for the product behind an add control.
// Errors are *Failure values.
func (e *Extractor) Extract(trigger Node) (cart.Descriptor, error) {
	if trigger == nil {
		return cart.Descriptor{}, &Failure{Notice: "Товар не найден", Err: errors.New("nil trigger")}
	}
	container := e.container(trigger)
	scope := container
	if scope == nil {
		scope = trigger.Parent()
	}

	name := cart.NormalizeName(e.resolve(trigger, container, scope, e.vocab.NameAttrs, e.vocab.NameLabels))
	if name == "" {
		return cart.Descriptor{}, &Failure{
			Notice: "Не удалось определить товар",
			Err:    ErrMissingName,
		}
	}

	rawPrice := e.resolve(trigger, container, scope, e.vocab.PriceAttrs, e.vocab.PriceLabels)
	if rawPrice == "" {
		return cart.Descriptor{}, &Failure{
			Notice: fmt.Sprintf("Не удалось определить цену: %s", name),
			Err:    fmt.Errorf("%w: %s", ErrMissingPrice, name),
		}
	}
	price, err := money.Parse(rawPrice)
	if err != nil {
		return cart.Descriptor{}, &Failure{
			Notice: fmt.Sprintf("Не удалось определить цену: %s", name),
			Err:    err,
		}
	}

	id := strings.TrimSpace(e.resolve(trigger, container, scope, e.vocab.IDAttrs, e.vocab.IDLabels))

	return cart.Descriptor{Name: name, ID: id, Price: price}, nil
}

// resolve walks the three sources for one field.
func (e *Extractor) resolve(trigger, container, scope Node, attrs, labels []string) string {
	if v := firstAttr(trigger, attrs); v != "" {
		return v
	}
	if container != nil {
		if v := firstAttr(container, attrs); v != "" {
			return v
		}
	}
	if scope != nil {
		for _, class := range labels {
			if label, ok := scope.FindByClass(class); ok {
				if v := e.stripPrefix(label.Text()); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// container returns the nearest ancestor recognized as a product container.
func (e *Extractor) container(n Node) Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		for _, tag := range e.vocab.ContainerTags {
			if p.Tag() == tag {
				return p
			}
		}
		for _, class := range e.vocab.ContainerClasses {
			if p.HasClass(class) {
				return p
			}
		}
		// Any ancestor speaking the attribute vocabulary is a container too.
		if firstAttr(p, e.vocab.NameAttrs) != "" || firstAttr(p, e.vocab.PriceAttrs) != "" {
			return p
		}
	}
	return nil
}

func (e *Extractor) stripPrefix(text string) string {
	text = strings.TrimSpace(text)
	for _, prefix := range e.vocab.LabelPrefixes {
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			text = strings.TrimSpace(text[len(prefix):])
			break
		}
	}
	return strings.TrimFunc(text, unicode.IsSpace)
}

func firstAttr(n Node, names []string) string {
	for _, name := range names {
		if v, ok := n.Attr(name); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
