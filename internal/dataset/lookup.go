package dataset

import (
	"context"

	"recallboard/internal/models"
	"recallboard/internal/validation"
)

// FindByPlate looks up the recall record for a plate number.
//
// The plate is normalized and validated before any shard I/O; only the shard
// matching the plate's last digit is consulted. When a plate has several
// historical records the policy is: prefer an open recall; among candidates
// with the same status preference, prefer the highest manufacture year;
// remaining ties resolve to the earliest row in shard order, so the result
// is deterministic for identical inputs.
//
// A plate with no record returns ErrRecordNotFound -- a clean vehicle, not
// a failure.
func (s *Store) FindByPlate(ctx context.Context, plate string) (*models.RecallRecord, error) {
	plate = validation.NormalizePlate(plate)
	if !validation.ValidatePlate(plate) {
		return nil, ErrInvalidPlate
	}

	table, err := s.LoadShard(ctx, validation.ShardDigit(plate))
	if err != nil {
		return nil, err
	}

	var best *models.RecallRecord
	for i := range table.Records {
		r := &table.Records[i]
		if r.Plate != plate {
			continue
		}
		if best == nil || betterMatch(r, best) {
			best = r
		}
	}
	if best == nil {
		return nil, ErrRecordNotFound
	}

	// Copy so callers can't mutate the cached table.
	out := *best
	return &out, nil
}

// betterMatch reports whether candidate should replace current under the
// open-first, newest-year tie-break. Strict comparisons keep the first row
// in shard order on full ties.
func betterMatch(candidate, current *models.RecallRecord) bool {
	if candidate.IsOpen() != current.IsOpen() {
		return candidate.IsOpen()
	}
	return candidate.Year > current.Year
}
