package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrNamespace = "namespace"
	AttrDirection = "direction"
	AttrKind      = "kind"
	AttrObject    = "object"
	AttrResult    = "result"
)

// Direction values for native messages.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)
