package handler

import (
	"strconv"
	"strings"

	"github.com/deppfellow/go-quizbank/internal/query"
	"github.com/deppfellow/go-quizbank/internal/validation"
)

// EmptyRequest is bound by endpoints without input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

// IDRequest carries a positive :id path parameter.
type IDRequest struct {
	ID int64 `param:"id" validate:"gt=0"`
}

func (r *IDRequest) Validate() error { return validation.Struct(r) }

// wireCategory applies the legacy convention of the public API: category 0
// or absent selects every category.
func wireCategory(id int64) query.Category {
	if id == 0 {
		return query.AllCategories()
	}
	return query.CategoryID(id)
}

// currentCategory is the JSON value of the selected category, null for all.
func currentCategory(c query.Category) *int64 {
	if id, ok := c.ID(); ok {
		return &id
	}
	return nil
}

// flexibleID accepts 3, "3" or "" (as zero) so that browser clients sending
// ids taken from object keys keep working.
type flexibleID int64

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	*f = flexibleID(id)
	return nil
}
