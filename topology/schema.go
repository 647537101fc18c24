package topology

import (
	"fmt"
	"strconv"

	"github.com/coreemu/coretk/api"
	memdb "github.com/hashicorp/go-memdb"
)

const (
	tableNode      = "node"
	tableEdge      = "edge"
	tableInterface = "interface"

	indexID     = "id"
	indexRemote = "remote"
	indexLow    = "low"
	indexHigh   = "high"
	indexEdge   = "edge"
	indexNode   = "node"
)

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableNode: {
			Name: tableNode,
			Indexes: map[string]*memdb.IndexSchema{
				indexID: {
					Name:    indexID,
					Unique:  true,
					Indexer: nodeIndexerByLocalID{},
				},
				indexRemote: {
					Name:    indexRemote,
					Unique:  true,
					Indexer: nodeIndexerByNodeID{},
				},
			},
		},
		tableEdge: {
			Name: tableEdge,
			Indexes: map[string]*memdb.IndexSchema{
				indexID: {
					Name:    indexID,
					Unique:  true,
					Indexer: edgeIndexerByToken{},
				},
				indexLow: {
					Name:    indexLow,
					Indexer: edgeIndexerByEndpoint{high: false},
				},
				indexHigh: {
					Name:    indexHigh,
					Indexer: edgeIndexerByEndpoint{high: true},
				},
			},
		},
		tableInterface: {
			Name: tableInterface,
			Indexes: map[string]*memdb.IndexSchema{
				indexID: {
					Name:    indexID,
					Unique:  true,
					Indexer: interfaceIndexerByID{},
				},
				indexEdge: {
					Name:    indexEdge,
					Indexer: interfaceIndexerByEdge{},
				},
				indexNode: {
					Name:    indexNode,
					Indexer: interfaceIndexerByNode{},
				},
			},
		},
	},
}

type nodeEntry struct {
	*Node
}

type edgeEntry struct {
	*Edge
}

// interfaceEntry registers an interface of a node together with the edge it
// was created for, so that a remote (node id, interface id) pair can be
// mapped back to the local edge.
type interfaceEntry struct {
	NodeID    int32
	LocalID   int
	Token     Token
	Interface *api.Interface
}

func interfaceKey(nodeID int32, ifaceID int32) string {
	return strconv.Itoa(int(nodeID)) + "/" + strconv.Itoa(int(ifaceID))
}

// fromArgs encodes a single index argument. Integers are written in decimal
// and tokens in their string form, all null terminated.
func fromArgs(args ...interface{}) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("must provide only a single argument")
	}
	var arg string
	switch v := args[0].(type) {
	case string:
		arg = v
	case int:
		arg = strconv.Itoa(v)
	case int32:
		arg = strconv.Itoa(int(v))
	case Token:
		arg = v.String()
	default:
		return nil, fmt.Errorf("argument must be a string, an integer or a token: %#v", args[0])
	}
	// Add the null character as a terminator
	arg += "\x00"
	return []byte(arg), nil
}

type nodeIndexerByLocalID struct{}

func (ni nodeIndexerByLocalID) FromArgs(args ...interface{}) ([]byte, error) {
	return fromArgs(args...)
}

func (ni nodeIndexerByLocalID) FromObject(obj interface{}) (bool, []byte, error) {
	n, ok := obj.(nodeEntry)
	if !ok {
		panic("unexpected type passed to FromObject")
	}
	val, err := fromArgs(n.LocalID)
	return true, val, err
}

type nodeIndexerByNodeID struct{}

func (ni nodeIndexerByNodeID) FromArgs(args ...interface{}) ([]byte, error) {
	return fromArgs(args...)
}

func (ni nodeIndexerByNodeID) FromObject(obj interface{}) (bool, []byte, error) {
	n, ok := obj.(nodeEntry)
	if !ok {
		panic("unexpected type passed to FromObject")
	}
	val, err := fromArgs(n.NodeID)
	return true, val, err
}

type edgeIndexerByToken struct{}

func (ei edgeIndexerByToken) FromArgs(args ...interface{}) ([]byte, error) {
	return fromArgs(args...)
}

func (ei edgeIndexerByToken) FromObject(obj interface{}) (bool, []byte, error) {
	e, ok := obj.(edgeEntry)
	if !ok {
		panic("unexpected type passed to FromObject")
	}
	val, err := fromArgs(e.Token)
	return true, val, err
}

// edgeIndexerByEndpoint indexes edges by the low or the high local id of
// their token.
type edgeIndexerByEndpoint struct {
	high bool
}

func (ei edgeIndexerByEndpoint) FromArgs(args ...interface{}) ([]byte, error) {
	return fromArgs(args...)
}

func (ei edgeIndexerByEndpoint) FromObject(obj interface{}) (bool, []byte, error) {
	e, ok := obj.(edgeEntry)
	if !ok {
		panic("unexpected type passed to FromObject")
	}
	endpoint := e.Token.Low
	if ei.high {
		endpoint = e.Token.High
	}
	val, err := fromArgs(endpoint)
	return true, val, err
}

type interfaceIndexerByID struct{}

func (ii interfaceIndexerByID) FromArgs(args ...interface{}) ([]byte, error) {
	return fromArgs(args...)
}

func (ii interfaceIndexerByID) FromObject(obj interface{}) (bool, []byte, error) {
	i, ok := obj.(interfaceEntry)
	if !ok {
		panic("unexpected type passed to FromObject")
	}
	val, err := fromArgs(interfaceKey(i.NodeID, i.Interface.ID))
	return true, val, err
}

type interfaceIndexerByEdge struct{}

func (ii interfaceIndexerByEdge) FromArgs(args ...interface{}) ([]byte, error) {
	return fromArgs(args...)
}

func (ii interfaceIndexerByEdge) FromObject(obj interface{}) (bool, []byte, error) {
	i, ok := obj.(interfaceEntry)
	if !ok {
		panic("unexpected type passed to FromObject")
	}
	val, err := fromArgs(i.Token)
	return true, val, err
}

type interfaceIndexerByNode struct{}

func (ii interfaceIndexerByNode) FromArgs(args ...interface{}) ([]byte, error) {
	return fromArgs(args...)
}

func (ii interfaceIndexerByNode) FromObject(obj interface{}) (bool, []byte, error) {
	i, ok := obj.(interfaceEntry)
	if !ok {
		panic("unexpected type passed to FromObject")
	}
	val, err := fromArgs(i.NodeID)
	return true, val, err
}
