package engine

import (
	"bufio"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"strings"
)

// Trajectory is a sequence of samples: Snapshot[i] is the concatenation
// of all voxels' molecule vectors at Times[i], in voxel-index then
// species-index order.
type Trajectory struct {
	Times    []float64
	Snapshot [][]int
}

// Simulator owns an ordered collection of voxels and steps them
// forward in time using the Next Subvolume Method: a global priority
// queue of putative next-reaction times, one per voxel, with the
// minimum popped, advanced, and recomputed on every step.
type Simulator struct {
	voxels []*Voxel
	clock  float64
	queue  *voxelQueue
	rng    *rand.Rand
	seed   uint64
}

// New takes ownership of voxels and initializes the next-reaction-time
// queue from their current state. The RNG is seeded from a
// nondeterministic source; call SetSeed for reproducibility.
func New(voxels []*Voxel) *Simulator {
	s := &Simulator{voxels: voxels}
	s.SetSeed(rand.Uint64())
	return s
}

// SetSeed reseeds the generator deterministically and re-initializes
// every voxel's next-reaction time from the current state.
func (s *Simulator) SetSeed(seed uint64) {
	s.seed = seed
	s.rng = rand.New(rand.NewChaCha8(seedArray(seed)))
	s.initQueue()
}

func seedArray(seed uint64) [32]byte {
	var b [32]byte
	for i := 0; i < 4; i++ {
		b[i*8] = byte(seed >> (8 * i))
	}
	b[31] = 1 // avoid an all-zero seed, which ChaCha8 rejects
	return b
}

func (s *Simulator) initQueue() {
	s.clock = 0
	s.queue = newVoxelQueue(len(s.voxels))
	for i, v := range s.voxels {
		tau := s.exponential(v.TotalPropensity(true))
		s.queue.insert(i, tau)
	}
}

// Seed returns the RNG seed the simulator was constructed or last
// reseeded with.
func (s *Simulator) Seed() uint64 { return s.seed }

// Time returns the current simulation clock.
func (s *Simulator) Time() float64 { return s.clock }

// Voxels returns the simulator's owned voxel list.
func (s *Simulator) Voxels() []*Voxel { return s.voxels }

// Molecules returns the concatenation of every voxel's molecule vector
// in voxel-index order.
func (s *Simulator) Molecules() []int {
	out := make([]int, 0)
	for _, v := range s.voxels {
		out = append(out, v.Molecules()...)
	}
	return out
}

// uniform draws a uniform (0, 1) value, redrawing on the boundary case
// U=0 so exponential(a) never silently returns +Inf for a finite a.
func (s *Simulator) uniform() float64 {
	for {
		u := s.rng.Float64()
		if u > 0 {
			return u
		}
	}
}

// exponential returns a draw from Exponential(propensity); the result
// is +Inf when propensity is 0, representing a permanently quiescent
// voxel.
func (s *Simulator) exponential(propensity float64) float64 {
	if propensity <= 0 {
		return math.Inf(1)
	}
	return -math.Log(s.uniform()) / propensity
}

// Step performs a single SSA/NSM event: pops the minimum next-reaction
// time from the queue, advances the clock, updates the firing voxel's
// time-dependent properties, samples and applies a reaction, and
// recomputes the next-reaction time for the firing voxel and (if the
// reaction is a diffusion jump) its target. It returns the number of
// molecule-count clamps triggered (expected 0) and any error.
func (s *Simulator) Step() (clamped int, err error) {
	top := s.queue.min()
	s.clock = top.time
	voxelIdx := top.voxel

	s.voxels[voxelIdx].UpdateProperties(s.clock)

	if math.IsInf(s.clock, 1) {
		return 0, nil
	}

	r, err := s.voxels[voxelIdx].PickReaction(s.uniform())
	if err != nil {
		return 0, &StepError{Step: -1, Time: s.clock, Voxel: voxelIdx, Err: err}
	}

	stoich := r.Stoichiometry
	diffusionTarget := r.DiffusionTarget

	clamped += s.voxels[voxelIdx].AddVector(stoich)
	s.recomputeNextTime(voxelIdx)

	if diffusionTarget >= 0 {
		if diffusionTarget >= len(s.voxels) {
			return clamped, &StepError{Step: -1, Time: s.clock, Voxel: voxelIdx, Err: ErrDiffusionTargetRange}
		}
		clamped += s.voxels[diffusionTarget].SubtractVector(stoich)
		s.recomputeNextTime(diffusionTarget)
	}

	return clamped, nil
}

func (s *Simulator) recomputeNextTime(voxelIdx int) {
	a0 := s.voxels[voxelIdx].TotalPropensity(true)
	tau := s.clock + s.exponential(a0)
	s.queue.update(voxelIdx, tau)
}

// Advance repeatedly steps until the clock reaches t or the system
// becomes permanently quiescent. It returns the total number of clamp
// events observed across every step taken.
func (s *Simulator) Advance(t float64) (clamped int, err error) {
	for s.clock < t {
		c, stepErr := s.Step()
		clamped += c
		if stepErr != nil {
			return clamped, stepErr
		}
		if math.IsInf(s.clock, 1) {
			break
		}
	}
	return clamped, nil
}

// Snapshot captures the current simulation time and molecule vector,
// for use by callers building up a Trajectory.
func (s *Simulator) Snapshot() (time float64, molecules []int) {
	return s.clock, s.Molecules()
}

// Run is the convenience trajectory writer: it samples the system at
// clock = timeStep*i for i = 0..numSteps-1, advancing to each sample
// point and writing a record immediately after the advance returns.
// header, if non-empty, is written as a leading "#"-prefixed comment
// line; pass "" to write the default "# time voxels..." header.
func (s *Simulator) Run(path string, timeStep float64, numSteps int, header string) (clamped int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("engine: opening trajectory file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	if header == "" {
		header = "# time voxels..."
	} else if !strings.HasPrefix(header, "#") {
		header = "# " + header
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return clamped, fmt.Errorf("engine: writing trajectory header: %w", err)
	}

	for i := 0; i < numSteps; i++ {
		c, advErr := s.Advance(timeStep * float64(i))
		clamped += c
		if advErr != nil {
			return clamped, advErr
		}

		if _, err := fmt.Fprintf(w, "%g", s.clock); err != nil {
			return clamped, fmt.Errorf("engine: writing trajectory record: %w", err)
		}
		for _, m := range s.Molecules() {
			if _, err := fmt.Fprintf(w, " %d", m); err != nil {
				return clamped, fmt.Errorf("engine: writing trajectory record: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return clamped, fmt.Errorf("engine: writing trajectory record: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return clamped, fmt.Errorf("engine: flushing trajectory file: %w", err)
	}
	return clamped, nil
}
