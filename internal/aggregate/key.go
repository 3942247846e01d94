package aggregate

import (
	"strings"

	"github.com/abtweb/studio-api/internal/domain"
)

// KeyKind tags which identity field a customer key was derived from.
type KeyKind int

const (
	// KeyEmail keys identify customers by normalized email address.
	KeyEmail KeyKind = iota
	// KeyName keys identify customers by trimmed name when no email was
	// submitted. Two different people sharing a name collide under this
	// kind; that is inherited behavior, kept pending a product decision.
	KeyName
)

// CustomerKey is the deduplication identity of a customer: a normalized
// email when one is present, otherwise a trimmed name.
type CustomerKey struct {
	Kind  KeyKind
	Value string
}

// KeyFor derives the customer key for the given contact info. The second
// return is false when the quote carries neither an email nor a name and
// therefore contributes no customer.
func KeyFor(info domain.CustomerInfo) (CustomerKey, bool) {
	if email := strings.TrimSpace(info.Email); email != "" {
		return CustomerKey{Kind: KeyEmail, Value: strings.ToLower(email)}, true
	}
	if name := strings.TrimSpace(info.Name); name != "" {
		return CustomerKey{Kind: KeyName, Value: name}, true
	}
	return CustomerKey{}, false
}
