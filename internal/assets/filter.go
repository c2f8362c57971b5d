package assets

import (
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	custom_error "github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/errors"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/metadata"
)

const dateParamLayout = "2006-01-02"

// Filter is the query specification shared by the asset listing and the report
// generators, so a report always matches the equivalent filtered listing.
// Absent fields impose no constraint; an empty query parameter counts as
// absent, which is why every field is a pointer.
type Filter struct {
	Search     *string
	Condition  *metadata.Condition
	Category   *string
	LocationID *int
	StartDate  *time.Time
	EndDate    *time.Time
}

// FilterFromQuery reads the six optional filter parameters from the request.
func FilterFromQuery(c *gin.Context) (Filter, error) {
	var filter Filter

	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}
	if v := c.Query("condition"); v != "" {
		condition, err := metadata.NewCondition(v)
		if err != nil {
			return Filter{}, custom_error.NewValidationError("condition", err.Error())
		}
		filter.Condition = &condition
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("location"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return Filter{}, custom_error.NewValidationError("location", "must be a numeric location id")
		}
		filter.LocationID = &id
	}
	if v := c.Query("startDate"); v != "" {
		date, err := time.Parse(dateParamLayout, v)
		if err != nil {
			return Filter{}, custom_error.NewValidationError("startDate", "must be formatted as YYYY-MM-DD")
		}
		filter.StartDate = &date
	}
	if v := c.Query("endDate"); v != "" {
		date, err := time.Parse(dateParamLayout, v)
		if err != nil {
			return Filter{}, custom_error.NewValidationError("endDate", "must be formatted as YYYY-MM-DD")
		}
		filter.EndDate = &date
	}

	return filter, nil
}

// BuildConditions compiles the filter into goqu expressions against the joined
// asset select ("a" = assets). Each supplied field contributes one expression;
// all of them combine with AND. Search is a case-insensitive substring match
// over name, owner and description.
func (f Filter) BuildConditions() []goqu.Expression {
	var conditions []goqu.Expression

	if f.Search != nil {
		pattern := "%" + *f.Search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.I("a.name").ILike(pattern),
			goqu.I("a.owner").ILike(pattern),
			goqu.I("a.description").ILike(pattern),
		))
	}
	if f.Condition != nil {
		conditions = append(conditions, goqu.Ex{"a.condition": f.Condition.String()})
	}
	if f.Category != nil {
		conditions = append(conditions, goqu.Ex{"a.category": *f.Category})
	}
	if f.LocationID != nil {
		conditions = append(conditions, goqu.Ex{"a.location_id": *f.LocationID})
	}
	if f.StartDate != nil {
		conditions = append(conditions, goqu.I("a.acquisition_date").Gte(*f.StartDate))
	}
	if f.EndDate != nil {
		conditions = append(conditions, goqu.I("a.acquisition_date").Lte(*f.EndDate))
	}

	return conditions
}
