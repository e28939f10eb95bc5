package service

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// IDGenerator issues ledger-style identifiers.
type IDGenerator interface {
	TokenID() string
	TransactionID() string
}

// SnowflakeIDs formats snowflake IDs as ledger account (0.0.N) and
// transaction (0.0.N-seconds-node) identifiers. IDs from one node never repeat.
type SnowflakeIDs struct {
	node   *snowflake.Node
	nodeID int64
}

func NewSnowflakeIDs(nodeID int64) (*SnowflakeIDs, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create id node %d: %w", nodeID, err)
	}
	return &SnowflakeIDs{node: node, nodeID: nodeID}, nil
}

func (g *SnowflakeIDs) TokenID() string {
	return "0.0." + g.node.Generate().String()
}

func (g *SnowflakeIDs) TransactionID() string {
	id := g.node.Generate()
	return fmt.Sprintf("0.0.%d-%d-%d", id.Int64(), id.Time()/1000, g.nodeID%100)
}
