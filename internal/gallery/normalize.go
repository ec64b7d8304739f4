package gallery

import "strings"

// Normalize folds multi-video "attach" fragments into their base record.
//
// Type-2 records with RoleAttach contribute their VideoURLs to the type-2 base
// named by AttachTo (base videos first, attach order preserved, no dedupe) and
// are then dropped. An attach whose base is missing is dropped silently. A
// type-2 record without a role is its own base. Every other record passes
// through untouched. The input slice is not modified, and normalizing an
// already normalized slice returns an equal slice.
func Normalize(records []Record) []Record {
	if len(records) == 0 {
		return []Record{}
	}

	merged := make(map[string]*Record)
	for i := range records {
		rec := records[i]
		if !isBase(rec) {
			continue
		}
		if _, dup := merged[rec.ID]; dup {
			continue
		}
		cp := rec.clone()
		merged[rec.ID] = &cp
	}

	for _, rec := range records {
		if !isAttach(rec) {
			continue
		}
		target, ok := merged[strings.TrimSpace(rec.AttachTo)]
		if !ok {
			continue
		}
		target.VideoURLs = append(target.VideoURLs, rec.VideoURLs...)
	}

	out := make([]Record, 0, len(records))
	emitted := make(map[string]bool, len(merged))
	for _, rec := range records {
		switch {
		case isAttach(rec):
			continue
		case isBase(rec) && !emitted[rec.ID]:
			emitted[rec.ID] = true
			out = append(out, *merged[rec.ID])
		default:
			out = append(out, rec.clone())
		}
	}
	return out
}

func isBase(rec Record) bool {
	return rec.ContentType == TypeMultiVideo && rec.Role != RoleAttach
}

func isAttach(rec Record) bool {
	return rec.ContentType == TypeMultiVideo && rec.Role == RoleAttach
}
