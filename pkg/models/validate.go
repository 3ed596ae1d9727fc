package models

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with decimal support registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			if d, ok := v.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
	})
	return validate
}

// Validate checks the structural completeness of a plot before valuation.
func (p *Plot) Validate() error {
	if err := Validator().Struct(p); err != nil {
		return fmt.Errorf("invalid plot: %w", err)
	}
	if _, err := NewStoredValues(p.StoredValues); err != nil {
		return fmt.Errorf("invalid plot: %w", err)
	}
	return nil
}
