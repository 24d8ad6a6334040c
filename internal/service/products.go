package service

import (
	"github.com/subbridge/subbridge/internal/config"
	"github.com/subbridge/subbridge/internal/domain/order"
	"github.com/subbridge/subbridge/internal/domain/subscription"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/logger"
)

// ProductSet is everything the line items of an order say about the subscription
type ProductSet struct {
	Products          []subscription.ProductLine
	IncludesFreeTrial bool
	RenewalFrequency  subscription.RenewalFrequency
}

// productAccumulator is the state threaded through the line items, left to right
type productAccumulator struct {
	frequency subscription.RenewalFrequency
	freeTrial bool
	products  []subscription.ProductLine
}

// ProductExtractor turns order line items into subscription product lines
type ProductExtractor struct {
	classifier lineItemClassifier
	logger     *logger.Logger
}

func NewProductExtractor(directives config.DirectivesConfig, logger *logger.Logger) *ProductExtractor {
	return &ProductExtractor{
		classifier: newLineItemClassifier(directives),
		logger:     logger,
	}
}

// Extract folds the line items in order. The last frequency directive wins and the
// first line item that cannot be priced aborts the whole extraction.
func (e *ProductExtractor) Extract(o *order.Order) (*ProductSet, error) {
	acc := productAccumulator{
		frequency: subscription.DefaultRenewalFrequency,
		products:  []subscription.ProductLine{},
	}

	for i, item := range o.LineItems {
		next, err := e.step(acc, item, o.NoteAttributes)
		if err != nil {
			return nil, ierr.WithError(err).
				WithMessagef("line item %d", i).
				Mark(ierr.ErrArithmetic)
		}
		acc = next
	}

	return &ProductSet{
		Products:          acc.products,
		IncludesFreeTrial: acc.freeTrial,
		RenewalFrequency:  acc.frequency,
	}, nil
}

func (e *ProductExtractor) step(acc productAccumulator, item order.LineItem, notes []order.NoteAttribute) (productAccumulator, error) {
	outcome, err := e.classifier.classify(item, notes)
	if err != nil {
		return acc, err
	}

	switch outcome.kind {
	case LineItemFrequency:
		e.logger.Debugw("renewal frequency directive", "sku", item.SKU, "frequency", outcome.frequency)
		acc.frequency = outcome.frequency
	case LineItemTrial:
		if len(outcome.products) == 0 {
			e.logger.Debugw("trial directive without a matching trial note", "sku", item.SKU)
		}
	}

	acc.freeTrial = acc.freeTrial || outcome.freeTrial
	acc.products = append(acc.products, outcome.products...)
	return acc, nil
}
