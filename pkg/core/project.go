package core

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/NaiveSK/OpenPNM/pkg/logging"
	"github.com/NaiveSK/OpenPNM/pkg/metrics"
	"github.com/NaiveSK/OpenPNM/pkg/network"
)

// Project owns the network topology and the roster of attached sub-domain
// objects, and brokers every cross-object lookup: which object governs a
// property where, and how indices translate between local and global
// numbering.
type Project struct {
	id      uuid.UUID
	network *network.Network

	full        *Base
	fullVersion uint64

	objects []*Base

	log     logging.Logger
	metrics *metrics.Registry
}

// ProjectConfig holds optional collaborators for a project
type ProjectConfig struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// NewProject creates a project around a network with default collaborators
func NewProject(net *network.Network) *Project {
	return NewProjectWithConfig(net, ProjectConfig{})
}

// NewProjectWithConfig creates a project around a network
func NewProjectWithConfig(net *network.Network, cfg ProjectConfig) *Project {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewDefaultLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewRegistry()
	}

	p := &Project{
		id:      uuid.New(),
		network: net,
		log:     cfg.Logger,
		metrics: cfg.Metrics,
	}

	net.SetIncidenceRebuildHook(func() {
		p.metrics.IncidenceRebuildsTotal.Inc()
	})

	p.full = newBase(p, "network", RoleNetwork, allIndices(net.NumPores()), allIndices(net.NumThroats()))
	p.fullVersion = net.Version()
	p.metrics.UpdateTopology(net.NumPores(), net.NumThroats())
	return p
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// ID returns the project's unique identity
func (p *Project) ID() uuid.UUID { return p.id }

// Network returns the project's network topology
func (p *Project) Network() *network.Network { return p.network }

// Logger returns the project logger
func (p *Project) Logger() logging.Logger { return p.log }

// Metrics returns the project metrics registry
func (p *Project) Metrics() *metrics.Registry { return p.metrics }

// refreshFullDomain re-anchors every object after a topology mutation. The
// full domain and phases span whatever the network now holds; geometries and
// physics recover their locations from their location labels, which the
// network reindexes on trims. Arrays written before the mutation keep their
// old length and are skipped by collection until rewritten.
func (p *Project) refreshFullDomain() {
	if p.fullVersion == p.network.Version() {
		return
	}
	p.full.pores = allIndices(p.network.NumPores())
	p.full.throats = allIndices(p.network.NumThroats())
	p.full.store.np = p.network.NumPores()
	p.full.store.nt = p.network.NumThroats()
	for _, o := range p.objects {
		p.refreshLocations(o)
	}
	p.fullVersion = p.network.Version()
	p.metrics.UpdateTopology(p.network.NumPores(), p.network.NumThroats())
}

func (p *Project) refreshLocations(o *Base) {
	switch o.role {
	case RolePhase:
		o.pores = allIndices(p.network.NumPores())
		o.throats = allIndices(p.network.NumThroats())
	case RoleGeometry:
		o.pores, o.throats = p.labelLocations(o.name)
	case RolePhysics:
		if o.geometry != nil {
			o.pores, o.throats = p.labelLocations(o.geometry.name)
		}
	}
	o.store.np = len(o.pores)
	o.store.nt = len(o.throats)
}

func (p *Project) labelLocations(name string) (pores, throats []int) {
	pores, err := p.network.Pores(name)
	if err != nil {
		pores = []int{}
	}
	throats, err = p.network.Throats(name)
	if err != nil {
		throats = []int{}
	}
	return pores, throats
}

// FullDomain returns the network-backed object spanning every pore and
// throat. It is the canonical global numbering.
func (p *Project) FullDomain() *Base {
	p.refreshFullDomain()
	return p.full
}

// FindFullDomain returns the full-domain object for any attached object
func (p *Project) FindFullDomain(obj Target) (*Base, error) {
	if obj.Project() != p {
		return nil, DisjointDomainError("FindFullDomain", obj.Name(), "network")
	}
	return p.FullDomain(), nil
}

// Objects returns the attached sub-domain objects in attach order
func (p *Project) Objects() []*Base {
	out := make([]*Base, len(p.objects))
	copy(out, p.objects)
	return out
}

// FindObject returns an attached object by name
func (p *Project) FindObject(name string) (*Base, bool) {
	if name == p.full.name {
		return p.FullDomain(), true
	}
	for _, o := range p.objects {
		if o.name == name {
			return o, true
		}
	}
	return nil, false
}

func (p *Project) autoName(role Role) string {
	prefix := map[Role]string{RoleGeometry: "geo", RolePhase: "phase", RolePhysics: "phys"}[role]
	count := 0
	for _, o := range p.objects {
		if o.role == role {
			count++
		}
	}
	return fmt.Sprintf("%s_%02d", prefix, count+1)
}

// GeometryConfig describes a geometry to attach
type GeometryConfig struct {
	Name  string
	Pores []int
	// AllowOverlap permits locations already claimed by a sibling geometry
	AllowOverlap bool
}

// AddGeometry attaches a geometry governing the given pores plus every
// throat touching them. The geometry's name becomes a location label on the
// network. Claiming pores or throats held by a sibling geometry fails with
// ErrConflictingDomain unless AllowOverlap is set.
func (p *Project) AddGeometry(cfg GeometryConfig) (*Base, error) {
	p.refreshFullDomain()
	name := cfg.Name
	if name == "" {
		name = p.autoName(RoleGeometry)
	}
	if _, taken := p.FindObject(name); taken || name == p.full.name {
		return nil, &DataError{Op: "AddGeometry", Object: name, Cause: fmt.Errorf("object name already in use")}
	}

	pores, err := normalizeIndices(cfg.Pores, p.network.NumPores())
	if err != nil {
		return nil, &DataError{Op: "AddGeometry", Object: name, Cause: err}
	}

	throats, err := p.network.NeighborThroats(pores)
	if err != nil {
		return nil, err
	}

	if !cfg.AllowOverlap {
		if err := p.checkClaims(RoleGeometry, pores, throats); err != nil {
			return nil, &DataError{Op: "AddGeometry", Object: name, Cause: err}
		}
	}

	if err := p.network.SetPoreLabel(name, pores); err != nil {
		return nil, err
	}
	if err := p.network.SetThroatLabel(name, throats); err != nil {
		return nil, err
	}

	geo := newBase(p, name, RoleGeometry, pores, throats)
	p.objects = append(p.objects, geo)
	p.log.Info("geometry attached",
		logging.String("object", name),
		logging.Int("pores", len(pores)),
		logging.Int("throats", len(throats)),
	)
	return geo, nil
}

// PhaseConfig describes a phase to attach
type PhaseConfig struct {
	Name string
}

// AddPhase attaches a phase. Phases exist everywhere: they span all pores
// and throats of the network.
func (p *Project) AddPhase(cfg PhaseConfig) (*Base, error) {
	p.refreshFullDomain()
	name := cfg.Name
	if name == "" {
		name = p.autoName(RolePhase)
	}
	if _, taken := p.FindObject(name); taken || name == p.full.name {
		return nil, &DataError{Op: "AddPhase", Object: name, Cause: fmt.Errorf("object name already in use")}
	}

	phase := newBase(p, name, RolePhase, allIndices(p.network.NumPores()), allIndices(p.network.NumThroats()))
	p.objects = append(p.objects, phase)
	p.log.Info("phase attached", logging.String("object", name))
	return phase, nil
}

// PhysicsConfig describes a physics object to attach
type PhysicsConfig struct {
	Name     string
	Phase    *Base
	Geometry *Base
	// AllowOverlap permits locations already claimed by another physics of
	// the same phase
	AllowOverlap bool
}

// AddPhysics attaches a physics object computing for one phase over one
// geometry's locations
func (p *Project) AddPhysics(cfg PhysicsConfig) (*Base, error) {
	p.refreshFullDomain()
	if cfg.Phase == nil || cfg.Geometry == nil {
		return nil, &DataError{Op: "AddPhysics", Cause: fmt.Errorf("phase and geometry are required")}
	}
	if cfg.Phase.project != p || cfg.Geometry.project != p {
		return nil, DisjointDomainError("AddPhysics", cfg.Phase.name, cfg.Geometry.name)
	}

	name := cfg.Name
	if name == "" {
		name = p.autoName(RolePhysics)
	}
	if _, taken := p.FindObject(name); taken || name == p.full.name {
		return nil, &DataError{Op: "AddPhysics", Object: name, Cause: fmt.Errorf("object name already in use")}
	}

	if !cfg.AllowOverlap {
		claimed := make(map[int]string)
		for _, o := range p.objects {
			if o.role != RolePhysics || o.phase != cfg.Phase {
				continue
			}
			for _, g := range o.pores {
				claimed[g] = o.name
			}
		}
		for _, g := range cfg.Geometry.pores {
			if owner, ok := claimed[g]; ok {
				return nil, &DataError{
					Op:     "AddPhysics",
					Object: name,
					Cause:  fmt.Errorf("%w: pore %d held by %q", ErrConflictingDomain, g, owner),
				}
			}
		}
	}

	pores := make([]int, len(cfg.Geometry.pores))
	copy(pores, cfg.Geometry.pores)
	throats := make([]int, len(cfg.Geometry.throats))
	copy(throats, cfg.Geometry.throats)

	phys := newBase(p, name, RolePhysics, pores, throats)
	phys.phase = cfg.Phase
	phys.geometry = cfg.Geometry
	p.objects = append(p.objects, phys)
	p.log.Info("physics attached",
		logging.String("object", name),
		logging.String("phase", cfg.Phase.name),
		logging.String("geometry", cfg.Geometry.name),
	)
	return phys, nil
}

// checkClaims rejects locations already claimed by a sibling of the same
// role. Throats count as claims too: a throat bridging two geometries is a
// conflict unless overlap is explicitly permitted.
func (p *Project) checkClaims(role Role, pores, throats []int) error {
	if err := p.checkElementClaims(role, "pore", pores, func(o *Base) []int { return o.pores }); err != nil {
		return err
	}
	return p.checkElementClaims(role, "throat", throats, func(o *Base) []int { return o.throats })
}

func (p *Project) checkElementClaims(role Role, kind string, indices []int, locations func(*Base) []int) error {
	claimed := make(map[int]string)
	for _, o := range p.objects {
		if o.role != role {
			continue
		}
		for _, g := range locations(o) {
			claimed[g] = o.name
		}
	}
	for _, g := range indices {
		if owner, ok := claimed[g]; ok {
			return fmt.Errorf("%w: %s %d held by %q", ErrConflictingDomain, kind, g, owner)
		}
	}
	return nil
}

func normalizeIndices(indices []int, count int) ([]int, error) {
	seen := make([]bool, count)
	for _, i := range indices {
		if i < 0 || i >= count {
			return nil, fmt.Errorf("%w: index %d with %d elements", ErrIndexRange, i, count)
		}
		seen[i] = true
	}
	out := make([]int, 0, len(indices))
	for i, ok := range seen {
		if ok {
			out = append(out, i)
		}
	}
	return out, nil
}

// MapPores translates pore indices local to src into dst's local numbering.
// Both objects must belong to this project. Indices with no image in dst are
// dropped from the result.
func (p *Project) MapPores(indices []int, src, dst Target) ([]int, error) {
	p.refreshFullDomain()
	return p.mapIndices("MapPores", indices, src.Pores(), dst.Pores(), src, dst)
}

// MapThroats translates throat indices local to src into dst's local
// numbering
func (p *Project) MapThroats(indices []int, src, dst Target) ([]int, error) {
	p.refreshFullDomain()
	return p.mapIndices("MapThroats", indices, src.Throats(), dst.Throats(), src, dst)
}

func (p *Project) mapIndices(op string, indices, srcGlobal, dstGlobal []int, src, dst Target) ([]int, error) {
	if src.Project() != p || dst.Project() != p {
		return nil, DisjointDomainError(op, src.Name(), dst.Name())
	}

	dstPos := make(map[int]int, len(dstGlobal))
	for local, global := range dstGlobal {
		dstPos[global] = local
	}

	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(srcGlobal) {
			return nil, &DataError{
				Op:     op,
				Object: src.Name(),
				Cause:  fmt.Errorf("%w: local index %d with %d elements", ErrIndexRange, i, len(srcGlobal)),
			}
		}
		if local, ok := dstPos[srcGlobal[i]]; ok {
			out = append(out, local)
		}
	}
	return out, nil
}

// CollectPoreData assembles a network-wide pore array for a property that
// may be scattered across sub-domain objects. Positions no object governs
// hold NaN. The full-domain store takes lowest precedence; sub-domain values
// overlay it in attach order.
func (p *Project) CollectPoreData(prop string) ([]float64, error) {
	return p.collect(prop, "pore")
}

// CollectThroatData assembles a network-wide throat array for a property
func (p *Project) CollectThroatData(prop string) ([]float64, error) {
	return p.collect(prop, "throat")
}

func (p *Project) collect(prop, wantKind string) ([]float64, error) {
	kind, err := KeyKind(prop)
	if err != nil {
		return nil, err
	}
	if kind != wantKind {
		return nil, &DataError{Op: "Collect", Key: prop, Cause: fmt.Errorf("%w: %s key in %s collection", ErrInvalidKey, kind, wantKind)}
	}

	p.refreshFullDomain()
	count := p.network.NumPores()
	if kind == "throat" {
		count = p.network.NumThroats()
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = math.NaN()
	}

	found := false
	scatter := func(obj *Base) {
		values, err := obj.store.Get(prop)
		if err != nil {
			return
		}
		locations := obj.pores
		if kind == "throat" {
			locations = obj.throats
		}
		if len(values) != len(locations) {
			// stale array from before a topology mutation
			return
		}
		for local, global := range locations {
			out[global] = values[local]
		}
		found = true
	}

	scatter(p.full)
	for _, obj := range p.objects {
		scatter(obj)
	}
	if !found {
		return nil, KeyNotFoundError("Collect", "project", prop)
	}
	return out, nil
}

// RegenerateAll re-runs every attached object's models in attach order,
// full domain first. The first failing object aborts the pass.
func (p *Project) RegenerateAll() error {
	if err := p.full.Regenerate(); err != nil {
		return err
	}
	for _, obj := range p.objects {
		if err := obj.Regenerate(); err != nil {
			return err
		}
	}
	return nil
}
