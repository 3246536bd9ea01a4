package domain

// Highlight palette shared by the editor, the animator and every renderer.
var (
	NeutralNode = NodeStyle{Background: "#e5e7eb", Border: "#9ca3af"}
	PendingNode = NodeStyle{Background: "#fde68a", Border: "#f59e0b"}
	VisitNode   = NodeStyle{Background: "#ffff00", Border: "#ffff00"}
	FinalNode   = NodeStyle{Background: "#ff0000", Border: "#ff0000"}
	PartitionA  = NodeStyle{Background: "#AABBCC", Border: "#64748b"}
	PartitionB  = NodeStyle{Background: "#FFCCAA", Border: "#fb7185"}

	NeutralEdge = EdgeStyle{Color: "#848484", Width: 2}
	VisitEdge   = EdgeStyle{Color: "#93c5fd", Width: 4}
	FinalEdge   = EdgeStyle{Color: "red", Width: 5}
	GoodEdge    = EdgeStyle{Color: "#22c55e", Width: 5}
)
