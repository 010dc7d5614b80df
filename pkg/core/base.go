package core

// Role identifies what a sub-domain object governs
type Role int

const (
	RoleNetwork Role = iota
	RoleGeometry
	RolePhase
	RolePhysics
)

// String returns the string representation of a role
func (r Role) String() string {
	switch r {
	case RoleNetwork:
		return "network"
	case RoleGeometry:
		return "geometry"
	case RolePhase:
		return "phase"
	case RolePhysics:
		return "physics"
	default:
		return "unknown"
	}
}

// Target is the interface model functions receive. It gives access to the
// owning object's locations, its property store and, through the project,
// the network topology and sibling objects.
type Target interface {
	Name() string
	Role() Role
	Project() *Project

	// Pores and Throats return the object's global element indices in
	// ascending order; local index i corresponds to the i-th entry.
	Pores() []int
	Throats() []int
	NumPores() int
	NumThroats() int

	Store() *PropertyStore
	Models() *ModelRegistry
}

// Base is the concrete sub-domain object: a named subset of the network's
// pores and throats with its own property store and model registry. The
// full-domain object, geometries, phases and physics are all Base instances
// with different roles and locations.
type Base struct {
	name    string
	role    Role
	project *Project

	pores   []int
	throats []int

	store  *PropertyStore
	models *ModelRegistry

	// physics objects carry the phase they compute for and the geometry
	// whose locations they inherit
	phase    *Base
	geometry *Base
}

func newBase(p *Project, name string, role Role, pores, throats []int) *Base {
	b := &Base{
		name:    name,
		role:    role,
		project: p,
		pores:   pores,
		throats: throats,
		store:   NewPropertyStore(name, len(pores), len(throats)),
	}
	b.models = newModelRegistry(b)
	return b
}

// Name returns the object name, which doubles as its location label on the
// network
func (b *Base) Name() string { return b.name }

// Role returns the object's role
func (b *Base) Role() Role { return b.role }

// Project returns the owning project
func (b *Base) Project() *Project { return b.project }

// Pores returns the object's global pore indices, ascending
func (b *Base) Pores() []int { return b.pores }

// Throats returns the object's global throat indices, ascending
func (b *Base) Throats() []int { return b.throats }

// NumPores returns the local pore count
func (b *Base) NumPores() int { return len(b.pores) }

// NumThroats returns the local throat count
func (b *Base) NumThroats() int { return len(b.throats) }

// Store returns the object's property store
func (b *Base) Store() *PropertyStore { return b.store }

// Models returns the object's model registry
func (b *Base) Models() *ModelRegistry { return b.models }

// Phase returns the phase a physics object computes for, or nil
func (b *Base) Phase() *Base { return b.phase }

// Geometry returns the geometry a physics object inherits its locations
// from, or nil
func (b *Base) Geometry() *Base { return b.geometry }

// Regenerate re-runs every registered model in dependency order
func (b *Base) Regenerate() error {
	return b.models.Regenerate()
}
