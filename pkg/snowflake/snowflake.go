// Package snowflake hands out unique, time-ordered int64 IDs for database
// rows. Init must run once before NextID.
package snowflake

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init creates the process node. nodeID must be in [0, 1023].
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("create snowflake node: %w", err)
	}
	node = n
	return nil
}

// NextID returns a new unique ID. Panics if Init was never called, which is
// a programming error rather than a runtime condition.
func NextID() int64 {
	if node == nil {
		panic("snowflake: Init not called")
	}
	return node.Generate().Int64()
}
