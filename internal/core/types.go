package core

import "porecore/pkg/network"

type (
	Element            = network.Element
	Key                = network.Key
	Array              = network.Array
	DType              = network.DType
	Model              = network.Model
	RegenMode          = network.RegenMode
	Snapshot           = network.Snapshot
	ArrayRecord        = network.ArrayRecord
	ModelRecord        = network.ModelRecord
	AddressingError    = network.AddressingError
	ShapeError         = network.ShapeError
	KeyNotFoundError   = network.KeyNotFoundError
	ModelNotFoundError = network.ModelNotFoundError
)

const (
	Pore   = network.Pore
	Throat = network.Throat
)

const (
	RegenNormal   = network.RegenNormal
	RegenDeferred = network.RegenDeferred
	RegenConstant = network.RegenConstant
)
