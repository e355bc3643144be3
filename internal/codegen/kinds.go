package codegen

import (
	"github.com/okra-platform/rpcgen/internal/schema"
)

// KindCodec is the behavior set a backend registers for one type kind.
// Read and Write return source fragments; Define returns the type's
// definition in the host language, which is empty for primitives.
type KindCodec interface {
	// Tag returns the wire codec tag name (e.g. "I32"). Empty means the kind
	// cannot appear on the wire as a field or list element.
	Tag() string
	Define(dt *schema.DataType) (string, error)
	Read(dt *schema.DataType, target string) (string, error)
	Write(dt *schema.DataType, value string) (string, error)
}

// KindFuncs adapts plain functions to KindCodec. Nil functions are treated
// as unsupported operations for the kind.
type KindFuncs struct {
	TagName    string
	DefineFunc func(dt *schema.DataType) (string, error)
	ReadFunc   func(dt *schema.DataType, target string) (string, error)
	WriteFunc  func(dt *schema.DataType, value string) (string, error)
}

func (k KindFuncs) Tag() string {
	return k.TagName
}

func (k KindFuncs) Define(dt *schema.DataType) (string, error) {
	if k.DefineFunc == nil {
		return "", nil
	}
	return k.DefineFunc(dt)
}

func (k KindFuncs) Read(dt *schema.DataType, target string) (string, error) {
	if k.ReadFunc == nil {
		return "", Invariantf("kind %s of %s has no read generator", dt.Kind, dt.Name)
	}
	return k.ReadFunc(dt, target)
}

func (k KindFuncs) Write(dt *schema.DataType, value string) (string, error) {
	if k.WriteFunc == nil {
		return "", Invariantf("kind %s of %s has no write generator", dt.Kind, dt.Name)
	}
	return k.WriteFunc(dt, value)
}

// TypeManager dispatches codec generation on a type's kind. It is filled
// once during backend setup and read-only afterwards.
type TypeManager struct {
	kinds map[schema.Kind]KindCodec
}

// NewTypeManager creates an empty type manager
func NewTypeManager() *TypeManager {
	return &TypeManager{kinds: make(map[schema.Kind]KindCodec)}
}

// Register binds a codec to a kind; registering a kind twice is an invariant violation
func (tm *TypeManager) Register(kind schema.Kind, codec KindCodec) error {
	if _, exists := tm.kinds[kind]; exists {
		return Invariantf("kind %s is already registered", kind)
	}
	tm.kinds[kind] = codec
	return nil
}

// RegisterPrimitives binds the same codec constructor to every primitive kind
func (tm *TypeManager) RegisterPrimitives(codec func(kind schema.Kind) KindCodec) error {
	for _, kind := range schema.Kinds() {
		if !kind.IsPrimitive() {
			continue
		}
		if err := tm.Register(kind, codec(kind)); err != nil {
			return err
		}
	}
	return nil
}

// Complete verifies that every kind has a registered codec
func (tm *TypeManager) Complete() error {
	for _, kind := range schema.Kinds() {
		if _, ok := tm.kinds[kind]; !ok {
			return Invariantf("kind %s has no registered codec", kind)
		}
	}
	return nil
}

func (tm *TypeManager) lookup(dt *schema.DataType) (KindCodec, error) {
	codec, ok := tm.kinds[dt.Kind]
	if !ok {
		return nil, Invariantf("kind %s of %s has no registered codec", dt.Kind, dt.Name)
	}
	return codec, nil
}

// CodecTag returns the wire tag name for the type's kind
func (tm *TypeManager) CodecTag(dt *schema.DataType) (string, error) {
	codec, err := tm.lookup(dt)
	if err != nil {
		return "", err
	}
	tag := codec.Tag()
	if tag == "" {
		return "", Invariantf("kind %s of %s has no codec tag", dt.Kind, dt.Name)
	}
	return tag, nil
}

// Define returns the host-language definition of the type
func (tm *TypeManager) Define(dt *schema.DataType) (string, error) {
	codec, err := tm.lookup(dt)
	if err != nil {
		return "", err
	}
	return codec.Define(dt)
}

// Read returns a fragment that decodes a value of dt into target
func (tm *TypeManager) Read(dt *schema.DataType, target string) (string, error) {
	codec, err := tm.lookup(dt)
	if err != nil {
		return "", err
	}
	return codec.Read(dt, target)
}

// Write returns a fragment that encodes value as dt
func (tm *TypeManager) Write(dt *schema.DataType, value string) (string, error) {
	codec, err := tm.lookup(dt)
	if err != nil {
		return "", err
	}
	return codec.Write(dt, value)
}
