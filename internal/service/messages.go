package service

import (
	"errors"
	"strings"
)

// Op names a cart store operation for user-facing messages.
type Op string

const (
	OpAdd          Op = "add"
	OpRemove       Op = "remove"
	OpUpdateAmount Op = "update_amount"
)

const DefaultLocale = "pt-BR"

// Messages holds the notification texts shown to the shopper.
type Messages struct {
	OutOfStock    string
	InvalidAmount string
	AddFailed     string
	RemoveFailed  string
	UpdateFailed  string
}

var messagesByLocale = map[string]Messages{
	"pt-BR": {
		OutOfStock:    "Quantidade solicitada fora de estoque",
		InvalidAmount: "Erro na alteração de quantidade do produto",
		AddFailed:     "Erro na adição do produto",
		RemoveFailed:  "Erro na remoção do produto",
		UpdateFailed:  "Erro na alteração de quantidade do produto",
	},
	"en": {
		OutOfStock:    "Requested quantity is out of stock",
		InvalidAmount: "Product quantity must be at least 1",
		AddFailed:     "Could not add product",
		RemoveFailed:  "Could not remove product",
		UpdateFailed:  "Could not change product quantity",
	},
}

// MessagesFor returns the texts for locale, falling back to DefaultLocale.
// Matching is case-insensitive and accepts "pt_br" style tags.
func MessagesFor(locale string) Messages {
	tag := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	for k, m := range messagesByLocale {
		if strings.EqualFold(k, tag) {
			return m
		}
	}
	if base, _, ok := strings.Cut(tag, "-"); ok {
		for k, m := range messagesByLocale {
			if strings.EqualFold(k, base) {
				return m
			}
		}
	}
	return messagesByLocale[DefaultLocale]
}

// For returns the message for a failed op. OutOfStock and InvalidAmount get
// their own text; anything else collapses to the per-operation message.
func (m Messages) For(op Op, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOutOfStock):
		return m.OutOfStock
	case errors.Is(err, ErrInvalidAmount):
		return m.InvalidAmount
	}

	switch op {
	case OpAdd:
		return m.AddFailed
	case OpRemove:
		return m.RemoveFailed
	default:
		return m.UpdateFailed
	}
}
