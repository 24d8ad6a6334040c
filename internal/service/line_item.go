package service

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/subbridge/subbridge/internal/config"
	"github.com/subbridge/subbridge/internal/domain/order"
	"github.com/subbridge/subbridge/internal/domain/subscription"
	ierr "github.com/subbridge/subbridge/internal/errors"
)

// LineItemKind is what a line item turns out to be once its SKU is inspected
type LineItemKind int

const (
	// LineItemBillable is a real product line
	LineItemBillable LineItemKind = iota
	// LineItemFrequency carries the renewal frequency in its SKU
	LineItemFrequency
	// LineItemTrial asks for the trial products listed in the order notes
	LineItemTrial
)

func (k LineItemKind) String() string {
	switch k {
	case LineItemFrequency:
		return "frequency"
	case LineItemTrial:
		return "trial"
	default:
		return "billable"
	}
}

// trialNotePattern matches note values like "TF_SPORT_SIZE (PRODUCT_ID-VARIANT_ID)"
var trialNotePattern = regexp.MustCompile(`^TF_.*?\((.*?)-(.*?)\)`)

var hundred = decimal.NewFromInt(100)

// lineItemOutcome is the effect of a single line item on the subscription
type lineItemOutcome struct {
	kind      LineItemKind
	frequency subscription.RenewalFrequency
	products  []subscription.ProductLine
	freeTrial bool
}

type lineItemClassifier struct {
	directives config.DirectivesConfig
}

func newLineItemClassifier(directives config.DirectivesConfig) lineItemClassifier {
	return lineItemClassifier{directives: directives}
}

// Kind classifies a line item by its SKU alone
func (c lineItemClassifier) Kind(item order.LineItem) LineItemKind {
	switch {
	case strings.HasPrefix(item.SKU, c.directives.FrequencyPrefix):
		return LineItemFrequency
	case strings.HasPrefix(item.SKU, c.directives.TrialPrefix):
		return LineItemTrial
	default:
		return LineItemBillable
	}
}

// classify works out what item contributes. notes are only read for trial directives.
func (c lineItemClassifier) classify(item order.LineItem, notes []order.NoteAttribute) (lineItemOutcome, error) {
	kind := c.Kind(item)
	switch kind {
	case LineItemFrequency:
		frequency := strings.ToLower(strings.TrimPrefix(item.SKU, c.directives.FrequencyPrefix))
		return lineItemOutcome{kind: kind, frequency: subscription.RenewalFrequency(frequency)}, nil

	case LineItemTrial:
		products := c.trialProducts(notes)
		return lineItemOutcome{kind: kind, products: products, freeTrial: len(products) > 0}, nil

	default:
		discount, err := discountPercent(item)
		if err != nil {
			return lineItemOutcome{}, err
		}
		pct := discount.InexactFloat64()
		return lineItemOutcome{
			kind: kind,
			products: []subscription.ProductLine{{
				ProductID:       subscription.NumericID(item.ProductID),
				VariantID:       subscription.NumericID(item.VariantID),
				Quantity:        item.Quantity,
				DiscountPercent: &pct,
			}},
		}, nil
	}
}

// trialProducts returns one line per trial note whose value matches trialNotePattern.
// Values that do not match are skipped.
func (c lineItemClassifier) trialProducts(notes []order.NoteAttribute) []subscription.ProductLine {
	var products []subscription.ProductLine
	for _, note := range notes {
		if note.Name != c.directives.TrialNoteKey {
			continue
		}
		productID, variantID, ok := parseTrialNote(note.Value)
		if !ok {
			continue
		}
		products = append(products, subscription.ProductLine{
			ProductID: subscription.TextID(productID),
			VariantID: subscription.TextID(variantID),
			Quantity:  1,
		})
	}
	return products
}

func parseTrialNote(value string) (productID, variantID string, ok bool) {
	matches := trialNotePattern.FindStringSubmatch(value)
	if len(matches) != 3 || matches[1] == "" || matches[2] == "" {
		return "", "", false
	}
	return matches[1], matches[2], true
}

// discountPercent is 100 - (price*quantity - totalDiscount) / (price*quantity) * 100.
// It is not clamped: a discount larger than the line total gives more than 100.
func discountPercent(item order.LineItem) (decimal.Decimal, error) {
	total := item.Total()
	if total.IsZero() {
		return decimal.Zero, ierr.NewError("cannot compute discount for a zero-value line item").
			WithHintf("Line item %s has price %s and quantity %d", item.SKU, item.Price.String(), item.Quantity).
			WithReportableDetails(map[string]any{
				"sku":        item.SKU,
				"product_id": item.ProductID,
				"variant_id": item.VariantID,
				"quantity":   item.Quantity,
			}).
			Mark(ierr.ErrArithmetic)
	}
	discounted := total.Sub(item.TotalDiscount)
	return hundred.Sub(discounted.Div(total).Mul(hundred)), nil
}
