package component

import "fmt"

// Group identifies one of the two disjoint object populations.
type Group uint8

const (
	GroupA Group = iota
	GroupB
)

func (g Group) Other() Group {
	if g == GroupA {
		return GroupB
	}
	return GroupA
}

func (g Group) String() string {
	switch g {
	case GroupA:
		return "A"
	case GroupB:
		return "B"
	default:
		return fmt.Sprintf("Group(%d)", uint8(g))
	}
}

// ParseGroup accepts "a"/"A" and "b"/"B".
func ParseGroup(s string) (Group, error) {
	switch s {
	case "a", "A":
		return GroupA, nil
	case "b", "B":
		return GroupB, nil
	}
	return 0, fmt.Errorf("unknown group %q", s)
}

// Solidity is whether an object takes part in physics (Real) or only blocks
// world switching (Ghost).
type Solidity uint8

const (
	Real Solidity = iota
	Ghost
)

func (s Solidity) String() string {
	if s == Ghost {
		return "ghost"
	}
	return "real"
}

// SolidityFor derives an object's solidity from the active group.
func SolidityFor(member, active Group) Solidity {
	if member == active {
		return Real
	}
	return Ghost
}

type WorldObject struct {
	Group    Group
	Solidity Solidity
}

var WorldObjectComponent = NewComponent[WorldObject]()
