package core

// Store owns every entity of a run. Blocks live in a fixed-capacity pool
// addressed by index; slots are never reallocated during play.
type Store struct {
	blocks  []Block
	free    int // Lowest index that may be free
	active  int
	buckets [2]Bucket
	mirrors []Mirror
	cannon  Cannon
	battery Battery
}

// NewStore creates a store with poolSize block slots, both buckets at their
// starting positions, the cannon centered and a full battery.
func NewStore(poolSize int, batteryMax float64) *Store {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}

	s := &Store{
		blocks:  make([]Block, poolSize),
		battery: Battery{Charge: batteryMax, Max: batteryMax},
	}

	s.buckets[BucketRed] = newBucket(-4.5)
	s.buckets[BucketGreen] = newBucket(-1.5)

	return s
}

func newBucket(center float64) Bucket {
	left := center - BucketWidth/2
	return Bucket{
		LeftEdge:        left,
		RightEdge:       left + BucketWidth,
		BottomLeft:      center - BucketBottomWidth/2,
		BottomRight:     center + BucketBottomWidth/2,
		InitialLeftEdge: left,
	}
}

// PoolSize returns the block capacity.
func (s *Store) PoolSize() int {
	return len(s.blocks)
}

// ActiveCount returns the number of falling blocks.
func (s *Store) ActiveCount() int {
	return s.active
}

// SpawnBlock activates the lowest free slot at the top of the descent.
// Returns false without touching state when the pool is full.
func (s *Store) SpawnBlock(x float64, kind Kind) (int, bool) {
	for i := s.free; i < len(s.blocks); i++ {
		if s.blocks[i].Active {
			continue
		}
		s.blocks[i] = Block{
			X:      x,
			Y:      0,
			SpawnY: BlockSpawnY,
			Kind:   kind,
			Active: true,
		}
		s.active++
		s.free = i + 1
		return i, true
	}
	s.free = len(s.blocks)
	return -1, false
}

// DeactivateBlock frees a slot. Out-of-range or already free ids are ignored.
func (s *Store) DeactivateBlock(id int) {
	if id < 0 || id >= len(s.blocks) || !s.blocks[id].Active {
		return
	}
	s.blocks[id].Active = false
	s.active--
	if id < s.free {
		s.free = id
	}
}

// Block returns a copy of the slot at id.
func (s *Store) Block(id int) (Block, bool) {
	if id < 0 || id >= len(s.blocks) {
		return Block{}, false
	}
	return s.blocks[id], true
}

// ForEachActiveBlock calls fn for every active block in pool order.
// fn receives a pointer into the pool; iteration stops when fn returns false.
func (s *Store) ForEachActiveBlock(fn func(id int, b *Block) bool) {
	remaining := s.active
	for i := range s.blocks {
		if remaining == 0 {
			return
		}
		if !s.blocks[i].Active {
			continue
		}
		remaining--
		if !fn(i, &s.blocks[i]) {
			return
		}
	}
}

// Bucket returns a copy of bucket id (BucketRed or BucketGreen).
func (s *Store) Bucket(id int) Bucket {
	if id != BucketRed && id != BucketGreen {
		return Bucket{}
	}
	return s.buckets[id]
}

// Buckets returns copies of both buckets.
func (s *Store) Buckets() [2]Bucket {
	return s.buckets
}

// SetBucketLeft moves a bucket so that its outer left edge is at left,
// clamped to keep the whole bucket inside the arena.
func (s *Store) SetBucketLeft(id int, left float64) {
	if id != BucketRed && id != BucketGreen {
		return
	}
	left = clampF(left, BucketMinLeft, BucketMaxLeft)
	b := &s.buckets[id]
	center := left + BucketWidth/2
	b.LeftEdge = left
	b.RightEdge = left + BucketWidth
	b.BottomLeft = center - BucketBottomWidth/2
	b.BottomRight = center + BucketBottomWidth/2
}

// SelectBucket marks a bucket as being dragged.
func (s *Store) SelectBucket(id int, selected bool) {
	if id != BucketRed && id != BucketGreen {
		return
	}
	s.buckets[id].Selected = selected
}

// SetMirrors installs the level's mirrors. Called once at setup.
func (s *Store) SetMirrors(mirrors []Mirror) {
	s.mirrors = make([]Mirror, len(mirrors))
	copy(s.mirrors, mirrors)
}

// Mirrors returns a copy of the mirror list.
func (s *Store) Mirrors() []Mirror {
	out := make([]Mirror, len(s.mirrors))
	copy(out, s.mirrors)
	return out
}

// MirrorCount returns the number of mirrors.
func (s *Store) MirrorCount() int {
	return len(s.mirrors)
}

func (s *Store) mirror(i int) *Mirror {
	return &s.mirrors[i]
}

// Cannon returns the cannon pose.
func (s *Store) Cannon() Cannon {
	return s.cannon
}

// SetCannonAngle sets the aim, clamped to [-45, 45] degrees.
func (s *Store) SetCannonAngle(deg float64) {
	s.cannon.AngleDeg = clampF(deg, CannonMinAngle, CannonMaxAngle)
}

// SetCannonY moves the cannon along the left edge, clamped to [-3.5, 3.5].
func (s *Store) SetCannonY(y float64) {
	s.cannon.Y = clampF(y, CannonMinY, CannonMaxY)
}

// SelectCannon marks the cannon as being dragged.
func (s *Store) SelectCannon(selected bool) {
	s.cannon.Selected = selected
}

// Battery returns the battery state.
func (s *Store) Battery() Battery {
	return s.battery
}

func (s *Store) setCharge(charge float64) {
	s.battery.Charge = clampF(charge, 0, s.battery.Max)
}
