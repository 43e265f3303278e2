package merge

// CollisionKind identifies what kind of collision an OnCollision hook is
// being told about.
type CollisionKind int

const (
	// CollisionRename is a name clash resolved by renaming the right-hand
	// entity.
	CollisionRename CollisionKind = iota
	// CollisionDeepMerge is a job fusion: two same-named jobs merged in
	// place rather than one being renamed.
	CollisionDeepMerge
	// CollisionHandleRename is a deep-merge intra-job handle rename.
	CollisionHandleRename
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionRename:
		return "rename"
	case CollisionDeepMerge:
		return "deep-merge"
	case CollisionHandleRename:
		return "handle-rename"
	default:
		return "unknown"
	}
}

// EntityKind identifies which of the three merge-able entity kinds a
// Collision concerns.
type EntityKind int

const (
	EntityResourceType EntityKind = iota
	EntityResource
	EntityJob
)

func (k EntityKind) String() string {
	switch k {
	case EntityResourceType:
		return "resource_type"
	case EntityResource:
		return "resource"
	case EntityJob:
		return "job"
	default:
		return "unknown"
	}
}

// Collision describes one collision the engine resolved while merging.
// It is purely observational: OnCollision never changes the outcome
// (the engine always applies its fixed left-priority rule), only what
// gets logged about it.
type Collision struct {
	Kind       CollisionKind
	Entity     EntityKind
	Name       string // the colliding right-hand entity's original name
	ResolvedAs string // the name it ended up with in the merged pipeline
}

// Resolution is returned by an OnCollision hook. Today it carries no
// fields; it exists so a future version of the engine can let an observer
// influence non-semantic details (e.g. suppress a particular rename's log
// line) without another breaking signature change.
type Resolution struct{}
