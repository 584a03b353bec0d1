package ast

import (
	"fmt"
)

// NodeID is the opaque identity of a node inside its Program. IDs are minted
// in insertion order and never reused.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

func (id NodeID) String() string { return fmt.Sprintf("#%d", uint32(id)) }
