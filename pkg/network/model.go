package network

// RegenMode tags how a registered model participates in regeneration.
// The tag is carried verbatim; no scheduling semantics are attached here.
type RegenMode string

const (
	// RegenNormal models run on every regeneration pass.
	RegenNormal RegenMode = "normal"
	// RegenDeferred models are registered but not run until asked for.
	RegenDeferred RegenMode = "deferred"
	// RegenConstant models produce data once and are left alone afterwards.
	RegenConstant RegenMode = "constant"
)

// Target is the store view a model evaluates against. It exposes the
// key-addressed read contract plus the count and interpolation helpers
// models commonly need. The concrete implementation is the domain overlay;
// models must not assume anything beyond this surface.
type Target interface {
	// Get resolves a key to a stored array (or a nested group map).
	Get(key string) (any, error)
	// GetArray resolves a key that must address a single leaf array.
	GetArray(key string) (*Array, error)
	// Resolve returns value itself coerced to an array when it is a
	// literal, or the stored array it names when it is a string key.
	Resolve(value any) (*Array, error)
	// Count returns the entity count for a kind, or false when no array
	// of that kind has established it yet.
	Count(el Element) (int, bool)
	// InterpolateData derives values for one kind from the neighboring
	// entities of the other kind.
	InterpolateData(prop string, mode string) (*Array, error)
}

// Model is a registered computation that derives a property array from the
// state of its target. Parameters are supplied as typed fields on the
// concrete model value, not as an untyped bag.
//
// When the model is registered with a domain restriction, domain carries
// the label key ("pore.left"); it is empty for whole-collection runs. The
// returned array must be sized to the full collection for whole-collection
// runs and to the restricted subset for domain runs.
type Model interface {
	Evaluate(target Target, domain string) (*Array, error)
}
