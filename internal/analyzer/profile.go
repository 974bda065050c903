package analyzer

import (
	"strings"

	"go-data-quality/internal/model"
)

// ProfileColumns builds the per-column type/cardinality/null summary for
// every column, in dataset column order.
func ProfileColumns(d *model.Dataset) []model.ColumnProfile {
	profiles := make([]model.ColumnProfile, 0, d.ColumnCount())
	for _, col := range d.Columns {
		nonNull := 0
		distinct := map[string]bool{}
		samples := []model.Value{}
		for _, row := range d.Rows {
			v := row.Cell(col)
			if v.IsNull() {
				continue
			}
			nonNull++
			distinct[v.Signature()] = true
			if len(samples) < 3 {
				samples = append(samples, v)
			}
		}
		nullCount := d.RowCount() - nonNull

		profile := model.ColumnProfile{
			Name:           col,
			DataType:       classifyColumn(d, col),
			NonNullCount:   nonNull,
			NullCount:      nullCount,
			NullPercentage: safePercentage(nullCount, d.RowCount()),
			UniqueValues:   len(distinct),
		}
		if nonNull > 0 {
			profile.SampleValues = samples
		}
		profiles = append(profiles, profile)
	}
	return profiles
}

// classifyColumn maps storage kinds to a simplified user-facing type. A
// date-suggesting name overrides whatever the cells store; mixed and
// all-null columns fall back to "string".
func classifyColumn(d *model.Dataset, col string) string {
	if strings.Contains(strings.ToLower(col), "date") {
		return "date"
	}

	kind := model.KindNull
	uniform := true
	for _, row := range d.Rows {
		v := row.Cell(col)
		if v.IsNull() {
			continue
		}
		k := v.Kind
		if kind == model.KindNull {
			kind = k
			continue
		}
		if k == kind {
			continue
		}
		// int and float mix into float; anything else is mixed storage
		if (kind == model.KindInt || kind == model.KindFloat) &&
			(k == model.KindInt || k == model.KindFloat) {
			kind = model.KindFloat
			continue
		}
		uniform = false
		break
	}
	if !uniform {
		return "string"
	}

	switch kind {
	case model.KindInt:
		return "int"
	case model.KindFloat:
		return "float"
	case model.KindBool:
		return "boolean"
	case model.KindDate:
		return "date"
	default:
		return "string"
	}
}
