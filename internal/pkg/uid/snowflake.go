package uid

import (
	"hash/fnv"
	"os"

	"github.com/bwmarrin/snowflake"
)

// Snowflake wraps a bwmarrin node. The node number comes from
// GOMOTOR_NODE_ID hashed into the 10-bit node space, falling back to the
// hostname, so replicas on different hosts do not collide.
type Snowflake struct {
	node *snowflake.Node
}

func NewSnowflake() (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeNumber())
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: node}, nil
}

func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

func nodeNumber() int64 {
	seed := os.Getenv("GOMOTOR_NODE_ID")
	if seed == "" {
		seed, _ = os.Hostname()
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))

	return int64(h.Sum32() % (1 << snowflake.NodeBits))
}
