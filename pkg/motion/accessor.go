package motion

// Accessor is a read/write pair bound to a single animated property.
// The scheduler reads the property once at registration to capture its
// starting value, then writes the interpolated value every tick.
//
// An error (or panic) from either side cancels the owning animation and
// is reported to the errs collaborator; it never halts the shared tick
// loop.
type Accessor interface {
	Read() (float64, error)
	Write(v float64) error
}

// DefaultThreshold is the convergence threshold used when a
// [PropertyHandle] leaves Threshold zero.
const DefaultThreshold = 1e-3

// PropertyHandle identifies the property an animation drives.
//
// Owner is the stable identity the registry keys on; it must be a
// comparable value (a pointer works well) and two animations share a
// slot only if their Owner values compare equal. Property is a
// diagnostic name carried into failure reports. Threshold is the
// magnitude below which spring and decay motion counts as converged.
type PropertyHandle struct {
	Owner     any
	Property  string
	Threshold float64
}

func (h PropertyHandle) threshold() float64 {
	if h.Threshold > 0 {
		return h.Threshold
	}
	return DefaultThreshold
}

type ptrAccessor struct {
	p *float64
}

func (a ptrAccessor) Read() (float64, error) { return *a.p, nil }

func (a ptrAccessor) Write(v float64) error {
	*a.p = v
	return nil
}

// PtrAccessor animates the float64 at p.
func PtrAccessor(p *float64) Accessor { return ptrAccessor{p: p} }

type funcAccessor struct {
	read  func() float64
	write func(float64)
}

func (a funcAccessor) Read() (float64, error) { return a.read(), nil }

func (a funcAccessor) Write(v float64) error {
	a.write(v)
	return nil
}

// FuncAccessor adapts a pair of closures into an Accessor. Use it when
// the animated property lives behind getters and setters that cannot
// fail.
func FuncAccessor(read func() float64, write func(float64)) Accessor {
	return funcAccessor{read: read, write: write}
}
