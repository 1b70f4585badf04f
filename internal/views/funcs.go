package views

import (
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/jonathan/empowr-credit/internal/mock"
	"github.com/jonathan/empowr-credit/internal/scoring"
	"github.com/jonathan/empowr-credit/internal/types"
)

var selectOptions = map[string][]types.Option{
	"state":               types.StateOptions,
	"status":              types.EmploymentStatusOptions,
	"employmentLength":    types.EmploymentLengthOptions,
	"bankingRelationship": types.BankingRelationshipOptions,
	"existingCredit":      types.ExistingCreditOptions,
}

var funcs = template.FuncMap{
	"currency": mock.FormatCurrency,
	"percent":  mock.FormatPercentage,
	"options":  func(field string) []types.Option { return selectOptions[field] },
	"optionLabel": func(field, value string) string {
		return types.OptionLabel(selectOptions[field], value)
	},
	"band": func(score int) string { return string(scoring.BandFor(score)) },
	"scorePercent": func(score int) string {
		return strconv.FormatFloat(scoring.Percent(score), 'f', 1, 64)
	},
	"num": func(v float64) string {
		if v == 0 {
			return ""
		}
		return formatFloat(v)
	},
	"date": func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"sub":  func(a, b int) int { return a - b },
	"dict": dict,
}

// dict builds a map from alternating keys and values so a template can pass
// several arguments to a sub-template.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
