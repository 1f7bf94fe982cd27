// Package flatten converts parsed JSON values into flat records whose keys
// encode the structural path of each scalar.
package flatten

import (
	"strconv"

	"json2csv/internal/errors"
	"json2csv/internal/models"
)

// Separator joins path segments in composite keys. It is a fixed
// implementation constant, not a tunable.
const Separator = "_"

// Flatten produces one FlatRecord from a JSON value. Object members
// contribute their key as a path segment, array elements their decimal
// index. A bare scalar with an empty prefix flattens to an empty record.
//
// Keys are unique by construction as long as the input's own keys do not
// already contain the separator; when they do (a literal "a_b" next to a
// nested {"a":{"b":...}}), the later write silently overwrites the earlier
// value. That inherited behavior is deliberate and pinned by tests.
func Flatten(value models.Value, prefix string) *models.FlatRecord {
	record := models.NewFlatRecord()
	flattenInto(record, value, prefix)
	return record
}

func flattenInto(record *models.FlatRecord, value models.Value, prefix string) {
	switch v := value.(type) {
	case models.Object:
		for _, member := range v {
			flattenInto(record, member.Value, childKey(prefix, member.Key))
		}
	case models.Array:
		for i, element := range v {
			flattenInto(record, element, childKey(prefix, strconv.Itoa(i)))
		}
	case models.String, models.Number, models.Bool, models.Null:
		if prefix != "" {
			record.Set(prefix, v)
		}
	}
}

func childKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + Separator + key
}

// Normalize turns a top-level JSON value into a ConversionJob. A single
// object becomes a one-element record list; an array contributes one record
// per element, whatever the element's type. The ordered key set collects
// every distinct composite key in first-seen order across records.
func Normalize(root models.Value) (*models.ConversionJob, error) {
	var rawRecords []models.Value
	switch v := root.(type) {
	case models.Object:
		rawRecords = []models.Value{v}
	case models.Array:
		rawRecords = v
	default:
		return nil, errors.NewConvertError(
			"top-level JSON value is neither an object nor an array",
			errors.ErrTopLevelNotObjectOrArray,
		)
	}

	if len(rawRecords) == 0 {
		return nil, errors.NewConvertError("no records to convert", errors.ErrNoRecords)
	}

	job := &models.ConversionJob{
		Records: make([]*models.FlatRecord, 0, len(rawRecords)),
	}
	seen := make(map[string]struct{})
	for _, raw := range rawRecords {
		record := Flatten(raw, "")
		job.Records = append(job.Records, record)
		for _, key := range record.Keys() {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				job.OrderedKeys = append(job.OrderedKeys, key)
			}
		}
	}
	return job, nil
}
