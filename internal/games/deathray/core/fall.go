package core

// Fall speed limits in world units per tick.
const (
	MinFallSpeed     = 0.001
	MaxFallSpeed     = 0.1
	DefaultFallSpeed = 0.05
)

// inCatchBand reports whether a block's bottom edge is level with the bucket rims.
func inCatchBand(b *Block) bool {
	bottom := b.Bottom()
	return bottom > CatchBandLow && bottom <= CatchBandHigh
}

// StepFall moves every active block down by speed and resolves catches and
// misses. Scoring events are appended to events and returned.
//
// Rules:
//   - Overlapping buckets catch nothing; blocks keep falling through.
//   - Red and Green blocks score in the matching bucket and lose points in the
//     other one; either way the block is removed.
//   - A Special block landing in any bucket counts as a wrong catch and is
//     removed so it is not counted again on the next tick.
//   - Blocks that leave the arena are dropped without penalty.
func StepFall(s *Store, t *Tracker, speed float64, events []Event) []Event {
	buckets := s.Buckets()
	ambiguous := buckets[BucketRed].Overlaps(buckets[BucketGreen])

	s.ForEachActiveBlock(func(id int, b *Block) bool {
		b.Y -= speed

		if b.Y < BlockMissY {
			s.DeactivateBlock(id)
			return true
		}

		if ambiguous || !inCatchBand(b) {
			return true
		}

		for bucket := BucketRed; bucket <= BucketGreen; bucket++ {
			if !buckets[bucket].Contains(b.X) {
				continue
			}
			events = append(events, t.Catch(id, b.Kind, bucket))
			s.DeactivateBlock(id)
			break
		}
		return true
	})

	return events
}
