package pipeline

import "github.com/dvloznov/sales-cleaner/internal/domain"

// categoricalColumns are validated against a closed vocabulary.
var categoricalColumns = []string{
	domain.ColItem,
	domain.ColPaymentMethod,
	domain.ColLocation,
}

// currencySymbols are stripped from monetary totals before parsing.
var currencySymbols = []string{"$", "£", "€", "¥"}
