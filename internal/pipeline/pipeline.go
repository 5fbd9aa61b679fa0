// Package pipeline turns raw point-of-sale rows into canonical, reconciled
// and deduplicated transaction records.
//
// Stages run in fixed order: placeholder normalization, categorical
// validation, numeric and date coercion, total reconciliation, then the
// completeness and identity filters. The first four are per-record and run
// concurrently; the filters see the whole table in input order.
package pipeline

import (
	"context"

	"github.com/dvloznov/sales-cleaner/internal/config"
	"github.com/dvloznov/sales-cleaner/internal/domain"
)

// New builds the standard cleaning pipeline from cfg. cfg must be valid.
func New(cfg *config.Config) *Pipeline {
	return NewPipeline(
		cfg.Workers,
		[]RecordStep{
			NewPlaceholderNormalizer(cfg.Placeholders),
			NewCategoricalValidator(
				domain.NewVocabulary(cfg.Vocabularies.Items...),
				domain.NewVocabulary(cfg.Vocabularies.PaymentMethods...),
				domain.NewVocabulary(cfg.Vocabularies.Locations...),
			),
			NewCoercer(cfg.DateLayout),
			NewReconciler(cfg.Tolerance()),
		},
		CompletenessFilter{},
		IdentityFilter{},
	)
}

// Clean runs the standard pipeline built from cfg over raws.
func Clean(ctx context.Context, cfg *config.Config, raws []domain.RawRecord) (*Result, error) {
	return New(cfg).Run(ctx, raws)
}
