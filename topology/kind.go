package topology

import (
	"strings"

	"github.com/coreemu/coretk/api"
)

// Medium is the shared medium a link layer node represents. Network layer
// nodes have MediumNone.
type Medium int

const (
	MediumNone Medium = iota
	MediumSwitch
	MediumHub
	MediumWLAN
	MediumRJ45
	MediumTunnel
)

var mediumNames = map[Medium]string{
	MediumSwitch: "switch",
	MediumHub:    "hub",
	MediumWLAN:   "wlan",
	MediumRJ45:   "rj45",
	MediumTunnel: "tunnel",
}

var mediumTypes = map[Medium]api.NodeType{
	MediumSwitch: api.NodeTypeSwitch,
	MediumHub:    api.NodeTypeHub,
	MediumWLAN:   api.NodeTypeWirelessLAN,
	MediumRJ45:   api.NodeTypeRJ45,
	MediumTunnel: api.NodeTypeTunnel,
}

// NetworkModels are the node kinds that own addressable interfaces. They all
// map to the backend's DEFAULT node type, qualified by the model.
var NetworkModels = []string{"router", "host", "PC", "mdr", "prouter", "OVS"}

// Kind is the resolved type of a node: either a link layer Medium, or a
// network layer node qualified by its model. A Kind is resolved once, when
// the node is created.
type Kind struct {
	medium Medium
	model  string
}

// LinkLayer returns the kind of a link layer node.
func LinkLayer(m Medium) Kind {
	return Kind{medium: m}
}

// NetworkLayer returns the kind of a network layer node with the given model.
func NetworkLayer(model string) Kind {
	return Kind{model: model}
}

// IsNetworkLayer reports whether nodes of this kind own interfaces.
func (k Kind) IsNetworkLayer() bool {
	return k.medium == MediumNone
}

// Medium returns the medium of a link layer kind.
func (k Kind) Medium() Medium {
	return k.medium
}

// Model returns the model of a network layer kind, empty for link layer
// kinds.
func (k Kind) Model() string {
	return k.model
}

// NodeType returns the backend node type of the kind.
func (k Kind) NodeType() api.NodeType {
	if k.IsNetworkLayer() {
		return api.NodeTypeDefault
	}
	return mediumTypes[k.medium]
}

func (k Kind) String() string {
	if k.IsNetworkLayer() {
		if k.model == "" {
			return "default"
		}
		return k.model
	}
	return mediumNames[k.medium]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It reverses
// MarshalText: link layer names give their medium and any other name is
// taken as a network layer model.
func (k *Kind) UnmarshalText(text []byte) error {
	name := string(text)
	for m, mediumName := range mediumNames {
		if name == mediumName {
			*k = LinkLayer(m)
			return nil
		}
	}
	if name == "default" {
		name = ""
	}
	*k = NetworkLayer(name)
	return nil
}

// ParseKind resolves the kind name used when placing a node. Link layer
// names ignore model. Network layer names use model when set and default to
// the name itself. "default" accepts any model. Other names fail with
// ErrUnknownKind.
func ParseKind(name, model string) (Kind, error) {
	for m, mediumName := range mediumNames {
		if name == mediumName {
			return LinkLayer(m), nil
		}
	}
	if strings.EqualFold(name, "default") {
		return NetworkLayer(model), nil
	}
	for _, candidate := range NetworkModels {
		if name == candidate {
			if model == "" {
				model = name
			}
			return NetworkLayer(model), nil
		}
	}
	return Kind{}, ErrUnknownKind{Kind: name}
}

// KindOf resolves the kind of a node reported by the backend. Node types the
// client cannot place fail with ErrUnknownKind.
func KindOf(t api.NodeType, model string) (Kind, error) {
	if t == api.NodeTypeDefault {
		return NetworkLayer(model), nil
	}
	for m, mt := range mediumTypes {
		if mt == t {
			return LinkLayer(m), nil
		}
	}
	return Kind{}, ErrUnknownKind{Kind: t.String()}
}
