// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package capability

import (
	"fmt"
	"sort"
	"strings"
)

// RecordCapKind enumerates the record operations of spec.md §4.K.
type RecordCapKind uint8

const (
	RecordCapNone RecordCapKind = iota
	RecordCapReadField
	RecordCapWriteField
	RecordCapProjectFields
	RecordCapExtendRecord
	RecordCapRestrictRecord
	RecordCapCreateRecord
	RecordCapDeleteRecord
	RecordCapFullRecordAccess
)

// RecordCap is a record-capability refinement: ReadField(f),
// WriteField(f), ProjectFields(F), ExtendRecord(S), RestrictRecord(F),
// CreateRecord(S), DeleteRecord, or FullRecordAccess. Field sets are
// stored as a sorted, comma-joined string rather than a slice so that
// RecordCap (and therefore Capability) stays comparable and usable as
// a map/set key.
type RecordCap struct {
	Kind   RecordCapKind
	Field  string // ReadField, WriteField
	Fields string // ProjectFields, RestrictRecord: sorted, comma-joined
	Shape  string // ExtendRecord, CreateRecord: sorted, comma-joined
}

func ReadField(field string) RecordCap  { return RecordCap{Kind: RecordCapReadField, Field: field} }
func WriteField(field string) RecordCap { return RecordCap{Kind: RecordCapWriteField, Field: field} }

func ProjectFields(fields []string) RecordCap {
	return RecordCap{Kind: RecordCapProjectFields, Fields: joinSorted(fields)}
}
func ExtendRecord(shape []string) RecordCap {
	return RecordCap{Kind: RecordCapExtendRecord, Shape: joinSorted(shape)}
}
func RestrictRecord(fields []string) RecordCap {
	return RecordCap{Kind: RecordCapRestrictRecord, Fields: joinSorted(fields)}
}
func CreateRecord(shape []string) RecordCap {
	return RecordCap{Kind: RecordCapCreateRecord, Shape: joinSorted(shape)}
}
func DeleteRecord() RecordCap     { return RecordCap{Kind: RecordCapDeleteRecord} }
func FullRecordAccess() RecordCap { return RecordCap{Kind: RecordCapFullRecordAccess} }

func joinSorted(in []string) string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return strings.Join(out, ",")
}

func fieldsOf(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

func contains(joined string, f string) bool {
	for _, x := range fieldsOf(joined) {
		if x == f {
			return true
		}
	}
	return false
}

// Implies checks the record-capability lattice of spec.md §4.K:
// FullRecordAccess implies everything; WriteField(f) implies
// ReadField(f); ProjectFields(F) implies ReadField(f) iff f ∈ F.
// RestrictRecord/ExtendRecord/CreateRecord/DeleteRecord only imply
// themselves (and FullRecordAccess implies them).
func (c RecordCap) Implies(req RecordCap) bool {
	if req.Kind == RecordCapNone {
		return true
	}
	if c.Kind == RecordCapFullRecordAccess {
		return true
	}
	if c.Kind == req.Kind {
		switch c.Kind {
		case RecordCapReadField, RecordCapWriteField:
			return c.Field == req.Field
		case RecordCapProjectFields, RecordCapRestrictRecord:
			for _, f := range fieldsOf(req.Fields) {
				if !contains(c.Fields, f) {
					return false
				}
			}
			return true
		case RecordCapExtendRecord, RecordCapCreateRecord:
			return c.Shape == req.Shape
		case RecordCapDeleteRecord:
			return true
		default:
			return false
		}
	}
	switch req.Kind {
	case RecordCapReadField:
		if c.Kind == RecordCapWriteField {
			return c.Field == req.Field
		}
		if c.Kind == RecordCapProjectFields {
			return contains(c.Fields, req.Field)
		}
	}
	return false
}

func (c RecordCap) String() string {
	switch c.Kind {
	case RecordCapNone:
		return "none"
	case RecordCapReadField:
		return fmt.Sprintf("ReadField(%s)", c.Field)
	case RecordCapWriteField:
		return fmt.Sprintf("WriteField(%s)", c.Field)
	case RecordCapProjectFields:
		return fmt.Sprintf("ProjectFields(%s)", c.Fields)
	case RecordCapExtendRecord:
		return fmt.Sprintf("ExtendRecord(%s)", c.Shape)
	case RecordCapRestrictRecord:
		return fmt.Sprintf("RestrictRecord(%s)", c.Fields)
	case RecordCapCreateRecord:
		return fmt.Sprintf("CreateRecord(%s)", c.Shape)
	case RecordCapDeleteRecord:
		return "DeleteRecord"
	case RecordCapFullRecordAccess:
		return "FullRecordAccess"
	default:
		return "?"
	}
}
