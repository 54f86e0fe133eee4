package component

// RespawnRequest is a marker component indicating a character should be
// teleported back to its spawn point.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
