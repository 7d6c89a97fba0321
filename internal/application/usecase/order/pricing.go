// Package order contains order intake and delivery status use cases.
package order

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// OptionSelection is the options a client picked in one option group.
type OptionSelection struct {
	Group   string
	Options []string
}

// priceItem validates the selections against the product's option groups and
// returns the unit price with every selected multiplier applied.
func priceItem(product *entity.Product, selections []OptionSelection) (decimal.Decimal, []string, error) {
	picked := make(map[string][]string, len(selections))
	for _, sel := range selections {
		if _, ok := product.FindOptionGroup(sel.Group); !ok {
			return decimal.Zero, nil, invalidSelection(fmt.Sprintf("%s has no option group %q", product.Name, sel.Group))
		}
		picked[sel.Group] = append(picked[sel.Group], sel.Options...)
	}

	price := product.BasePrice
	var labels []string

	for _, group := range product.OptionGroups {
		chosen := picked[group.Name]

		minSelect := group.MinSelect
		if group.Required && minSelect < 1 {
			minSelect = 1
		}
		if len(chosen) < minSelect {
			return decimal.Zero, nil, invalidSelection(fmt.Sprintf("%s requires at least %d option(s) in %q", product.Name, minSelect, group.Name))
		}
		if group.MaxSelect > 0 && len(chosen) > group.MaxSelect {
			return decimal.Zero, nil, invalidSelection(fmt.Sprintf("%s allows at most %d option(s) in %q", product.Name, group.MaxSelect, group.Name))
		}

		seen := make(map[string]bool, len(chosen))
		for _, name := range chosen {
			if seen[name] {
				return decimal.Zero, nil, invalidSelection(fmt.Sprintf("option %q selected twice in %q", name, group.Name))
			}
			seen[name] = true

			opt, ok := group.FindOption(name)
			if !ok {
				return decimal.Zero, nil, invalidSelection(fmt.Sprintf("%q is not an option of %q", name, group.Name))
			}
			price = price.Mul(opt.PriceMultiplier)
			labels = append(labels, group.Name+": "+opt.Name)
		}
	}

	sort.Strings(labels)
	return price.Round(2), labels, nil
}

func invalidSelection(message string) error {
	return domainerror.NewOrderError(
		domainerror.ErrCodeInvalidOptionSelection,
		message,
		domainerror.ErrInvalidOptionSelection,
	)
}
